package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// Statement parsing.
//
//	Statements          ::= Statement+ ExpressionWithoutBlock?
//	                      | ExpressionWithoutBlock
//	Statement           ::= `;` | Item | LetStatement | ExpressionStatement
//	LetStatement        ::= OuterAttribute* (`let` | `ur` | `sr` | `nr`)
//	                        PatternNoTopAlt (`:` Type)?
//	                        (`=` Expression (`else` BlockExpression)?)? `;`
//	ExpressionStatement ::= ExpressionWithoutBlock `;` | ExpressionWithBlock `;`?

// statements parses the body of a block: one or more statements with an
// optional trailing tail expression, or a bare tail expression.
func (par *Parser) statements() (*cst.Node, error) {
	key, memoNode, err := par.enter("Statements")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.STATEMENTS)

	// Statement+ ExpressionWithoutBlock?
	if first, firstErr := par.statement(); firstErr == nil {
		node.AddChild(first)

		for {
			statement, stmtErr := par.statement()
			if stmtErr != nil {
				break
			}
			node.AddChild(statement)
		}

		if tail, tailErr := par.expressionWithoutBlock(); tailErr == nil {
			node.AddChild(tail)
		}

		return par.succeed(key, node)
	}

	// ExpressionWithoutBlock
	if tail, tailErr := par.expressionWithoutBlock(); tailErr == nil {
		node.AddChild(tail)
		return par.succeed(key, node)
	}

	return par.errorAt(errs.NotMatch, key)
}

// statement parses one statement.
func (par *Parser) statement() (*cst.Node, error) {
	key, memoNode, err := par.enter("Statement")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	// `;`
	if par.peekIs(token.SEMICOLON_DELIM) {
		node := cst.NewNode(cst.STATEMENT, par.makeFactorNext())
		return par.succeed(key, node)
	}

	// Item
	if item, itemErr := par.item(); itemErr == nil {
		node := cst.NewNode(cst.STATEMENT, item)
		return par.succeed(key, node)
	}

	// LetStatement
	if letStatement, letErr := par.letStatement(); letErr == nil {
		node := cst.NewNode(cst.STATEMENT, letStatement)
		return par.succeed(key, node)
	}

	// ExpressionStatement
	if exprStatement, exprErr := par.expressionStatement(); exprErr == nil {
		node := cst.NewNode(cst.STATEMENT, exprStatement)
		return par.succeed(key, node)
	}

	return par.errorAt(errs.NotMatch, key)
}

// letStatement parses a variable declaration. The leading keyword names
// the declaration's rarity: let, ur, sr, or nr.
func (par *Parser) letStatement() (*cst.Node, error) {
	key, memoNode, err := par.enter("LetStatement")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.LET_STATEMENT)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	// (`let` | `ur` | `sr` | `nr`)
	tok := par.stream.Peek()
	if tok.Kind != token.KEYWORD_KIND || !token.IsRarity(tok.Keyword) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node.AddChild(par.makeFactorNext())

	// PatternNoTopAlt
	pattern, err := par.patternNoTopAlt()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(pattern)

	// (`:` Type)?
	if par.peekIs(token.COLON_DELIM) && par.stream.PeekGlue().Kind != token.PATH_SEPARATOR {
		node.AddChild(par.makeFactorNext())

		typeExpression, typeErr := par.typeExpression()
		if typeErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(typeExpression)
	}

	// (`=` Expression (`else` BlockExpression)?)?
	if par.peekIs(token.EQUAL_OP) && par.stream.PeekGlue().Kind == token.EQUAL_OP {
		node.AddChild(par.makeFactorNext())

		expression, exprErr := par.expression()
		if exprErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(expression)

		if par.peekIsKeyword(token.KW_ELSE) {
			node.AddChild(par.makeFactorNext())

			block, blockErr := par.blockExpression()
			if blockErr != nil {
				return par.errorAt(errs.ExpectedToken, key)
			}
			node.AddChild(block)
		}
	}

	// `;`
	if !par.peekIs(token.SEMICOLON_DELIM) {
		return par.errorAt(errs.MissingSemicolon, key)
	}
	node.AddChild(par.makeFactorNext())

	return par.succeed(key, node)
}

// expressionStatement parses an expression in statement position. An
// expression without block needs its terminating semicolon; a
// block-flavored expression may omit it.
func (par *Parser) expressionStatement() (*cst.Node, error) {
	key, memoNode, err := par.enter("ExpressionStatement")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	// ExpressionWithoutBlock `;`
	if expr, exprErr := par.expressionWithoutBlock(); exprErr == nil {
		if par.peekIs(token.SEMICOLON_DELIM) {
			node := cst.NewNode(cst.EXPRESSION_STATEMENT, expr, par.makeFactorNext())
			return par.succeed(key, node)
		}
		// No semicolon: rewind, the expression may be the block's tail.
		par.stream.SetPosition(key.position)
	}

	// ExpressionWithBlock `;`?
	if expr, exprErr := par.expressionWithBlock(); exprErr == nil {
		node := cst.NewNode(cst.EXPRESSION_STATEMENT, expr)
		if par.peekIs(token.SEMICOLON_DELIM) {
			node.AddChild(par.makeFactorNext())
		}
		return par.succeed(key, node)
	}

	return par.errorAt(errs.NotMatch, key)
}
