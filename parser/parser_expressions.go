package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// Expression parsing.
//
// Expression partitions into ExpressionWithoutBlock and
// ExpressionWithBlock. The without-block side is driven entirely by the
// Pratt operator sub-parser: its operand layer recognizes literal, path,
// grouped, struct, call, method-call and return expressions, and the
// binding-power loop folds operators around them.

// expression parses
//
//	Expression ::= ExpressionWithoutBlock | ExpressionWithBlock
func (par *Parser) expression() (*cst.Node, error) {
	key, memoNode, err := par.enter("Expression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if expr, err := par.expressionWithoutBlock(); err == nil {
		return par.succeed(key, expr)
	}

	if expr, err := par.expressionWithBlock(); err == nil {
		return par.succeed(key, expr)
	}

	return par.errorAt(errs.NotMatch, key)
}

// expressionWithoutBlock parses
//
//	ExpressionWithoutBlock ::= OuterAttribute* OperatorExpression
//
// where OperatorExpression covers the single-operand case as well: a bare
// literal is an operator expression with no operators.
func (par *Parser) expressionWithoutBlock() (*cst.Node, error) {
	key, memoNode, err := par.enter("ExpressionWithoutBlock")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.EXPRESSION_WITHOUT_BLOCK)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	expr, err := par.operatorExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(expr)

	return par.succeed(key, node)
}

// operatorExpression is the memoized entry point of the Pratt sub-parser.
func (par *Parser) operatorExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("OperatorExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node, err := par.pratt(key, 0)
	if err != nil {
		par.stream.SetPosition(key.position)
		return nil, err
	}
	return par.succeed(key, node)
}

// pratt runs one level of the binding-power loop. It reads a left-hand
// side (a prefix operator application or a plain operand), then folds
// infix operators whose left binding power is at least minBP, parsing
// each right-hand side with the operator's right binding power as the new
// minimum.
func (par *Parser) pratt(key memoKey, minBP int) (*cst.Node, error) {
	var lhs *cst.Node

	prefix := par.stream.PeekGlue()
	if rightBP, ok := prefixBindingPower(prefix.Kind); ok && prefix.IsOperator() {
		// Prefix operator: one child parsed at the prefix binding.
		node := par.makeOperatorNext()
		operand, err := par.pratt(key, rightBP)
		if err != nil {
			return par.errorAt(errs.NotMatch, key)
		}
		node.AddChild(operand)
		lhs = node
	} else {
		operand, err := par.operand()
		if err != nil {
			if errs.IsNotMatch(err) {
				return par.errorAt(errs.NotMatch, key)
			}
			return nil, err
		}
		lhs = operand
	}

	for {
		op := par.stream.PeekGlue()
		if !op.IsOperator() {
			break
		}

		if leftBP, ok := postfixBindingPower(op.Kind); ok {
			if leftBP < minBP {
				break
			}
			node := par.makeOperatorNext()
			node.AddChild(lhs)
			lhs = node
			continue
		}

		leftBP, rightBP, ok := infixBindingPower(op.Kind)
		if !ok {
			break
		}
		if leftBP < minBP {
			break
		}

		opNode := par.makeOperatorNext()
		rhs, err := par.pratt(key, rightBP)
		if err != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}

		// Comparisons do not chain: a == b == c is rejected here rather
		// than silently folded right.
		if isComparison(op.Kind) && rhs.NodeKind == cst.OPERATOR &&
			rhs.Token != nil && isComparison(rhs.Token.Kind) {
			return par.errorAt(errs.ExpectedToken, key)
		}

		opNode.AddChild(lhs)
		opNode.AddChild(rhs)
		lhs = opNode
	}

	return lhs, nil
}

// operand parses the primary layer of the Pratt sub-parser: the
// expressions an operator can apply to. Attempt order: grouped, literal,
// return, struct (unless suppressed), then path with call/method-call
// postfix.
func (par *Parser) operand() (*cst.Node, error) {
	switch {
	case par.peekIs(token.LEFT_PAREN):
		return par.groupedExpression()

	case par.peekIs(token.LITERAL_KIND),
		par.peekIsKeyword(token.KW_TRUE),
		par.peekIsKeyword(token.KW_FALSE):
		return par.literalExpression()

	case par.peekIsKeyword(token.KW_RETURN):
		return par.returnExpression()
	}

	if !par.pathStarts() {
		return nil, errs.NewSyntax(errs.NotMatch, "Operand", par.stream.TokenPosition())
	}

	// A path followed by `{` is a struct expression, except in scrutinee
	// and condition positions where the brace belongs to the block.
	if !par.noStructLiteral {
		if expr, err := par.structExpression(); err == nil {
			return expr, nil
		} else if !errs.IsNotMatch(err) {
			return nil, err
		}
	}

	expr, err := par.pathExpression()
	if err != nil {
		return nil, err
	}
	return par.callPostfix(expr)
}

// pathStarts reports whether the cursor can start a path expression.
func (par *Parser) pathStarts() bool {
	tok := par.stream.Peek()
	switch {
	case tok.Kind == token.IDENTIFIER_KIND:
		return true
	case par.stream.PeekGlue().Kind == token.PATH_SEPARATOR:
		return true
	case tok.IsKeyword(token.KW_SUPER), tok.IsKeyword(token.KW_SELF_VALUE),
		tok.IsKeyword(token.KW_SELF_TYPE), tok.IsKeyword(token.KW_CRATE):
		return true
	}
	return false
}

// literalExpression parses a literal token or a true/false keyword into a
// Literal leaf.
func (par *Parser) literalExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("LiteralExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	tok := par.stream.Peek()
	switch {
	case tok.Kind == token.LITERAL_KIND:
		par.stream.Next()
		return par.succeed(key, cst.NewLiteral(tok, tok.Literal))

	case tok.IsKeyword(token.KW_TRUE):
		par.stream.Next()
		return par.succeed(key, cst.NewLiteral(tok, token.NewBoolLiteral(true)))

	case tok.IsKeyword(token.KW_FALSE):
		par.stream.Next()
		return par.succeed(key, cst.NewLiteral(tok, token.NewBoolLiteral(false)))
	}

	return par.errorAt(errs.ExpectedToken, key)
}

// pathExpression parses
//
//	PathExpression   ::= PathInExpression
//	PathInExpression ::= `::`? PathExprSegment (`::` PathExprSegment)*
func (par *Parser) pathExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("PathExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	path, err := par.pathInExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	return par.succeed(key, path)
}

// pathInExpression parses the segment chain of a path.
func (par *Parser) pathInExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("PathInExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.PATH_IN_EXPRESSION)

	// `::`?
	if par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		node.AddChild(cst.NewFactor(par.stream.NextGlue()))
	}

	// PathExprSegment
	segment, err := par.pathExprSegment()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(segment)

	// (`::` PathExprSegment)*
	for par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		savedPosition := par.stream.TokenPosition()
		separator := cst.NewFactor(par.stream.NextGlue())

		segment, err := par.pathExprSegment()
		if err != nil {
			par.stream.SetPosition(savedPosition)
			break
		}
		node.AddChild(separator)
		node.AddChild(segment)
	}

	return par.succeed(key, node)
}

// pathExprSegment parses
//
//	PathExprSegment  ::= PathIdentSegment
//	PathIdentSegment ::= Identifier | `super` | `self` | `Self` | `crate`
func (par *Parser) pathExprSegment() (*cst.Node, error) {
	key, memoNode, err := par.enter("PathExprSegment")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	tok := par.stream.Peek()
	valid := tok.Kind == token.IDENTIFIER_KIND ||
		tok.IsKeyword(token.KW_SUPER) || tok.IsKeyword(token.KW_SELF_VALUE) ||
		tok.IsKeyword(token.KW_SELF_TYPE) || tok.IsKeyword(token.KW_CRATE)
	if !valid {
		return par.errorAt(errs.NotMatch, key)
	}

	node := cst.NewNode(cst.PATH_EXPR_SEGMENT, par.makeFactorNext())
	return par.succeed(key, node)
}

// groupedExpression parses
//
//	GroupedExpression ::= `(` Expression `)`
//
// The nested expression starts a fresh Pratt loop, which is what resets
// the minimum binding power inside parentheses.
func (par *Parser) groupedExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("GroupedExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	leftParen, err := par.expectKind(key, token.LEFT_PAREN)
	if err != nil {
		return nil, err
	}

	// Parentheses re-admit struct literals even inside a scrutinee.
	saved := par.noStructLiteral
	par.noStructLiteral = false
	expression, err := par.expression()
	par.noStructLiteral = saved
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	if !par.peekIs(token.RIGHT_PAREN) {
		return par.errorAt(errs.ParenthesesNotClosed, key)
	}
	rightParen := par.makeFactorNext()

	node := cst.NewNode(cst.GROUPED_EXPRESSION, leftParen, expression, rightParen)
	grouped, err := par.callPostfix(node)
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	return par.succeed(key, grouped)
}

// callPostfix folds call and method-call forms onto an operand:
//
//	CallExpression       ::= Operand `(` CallParams? `)`
//	MethodCallExpression ::= Operand `.` PathExprSegment `(` CallParams? `)`
//
// Plain field access (a dot not followed by a call) is left alone for the
// infix `.` operator of the Pratt loop.
func (par *Parser) callPostfix(callee *cst.Node) (*cst.Node, error) {
	for {
		switch {
		case par.peekIs(token.LEFT_PAREN):
			node := cst.NewNode(cst.CALL_EXPRESSION, callee)
			node.AddChild(par.makeFactorNext()) // `(`

			if !par.peekIs(token.RIGHT_PAREN) {
				params, err := par.callParams()
				if err != nil {
					return nil, err
				}
				node.AddChild(params)
			}

			if !par.peekIs(token.RIGHT_PAREN) {
				return nil, errs.NewSyntax(errs.ParenthesesNotClosed, "CallExpression", par.stream.TokenPosition())
			}
			node.AddChild(par.makeFactorNext()) // `)`
			callee = node

		case par.peekIs(token.DOT_OP) &&
			par.stream.PeekAhead(1).Kind == token.IDENTIFIER_KIND &&
			par.stream.PeekAhead(2).Kind == token.LEFT_PAREN:
			node := cst.NewNode(cst.METHOD_CALL_EXPRESSION, callee)
			node.AddChild(par.makeFactorNext()) // `.`

			segment, err := par.pathExprSegment()
			if err != nil {
				return nil, err
			}
			node.AddChild(segment)
			node.AddChild(par.makeFactorNext()) // `(`

			if !par.peekIs(token.RIGHT_PAREN) {
				params, err := par.callParams()
				if err != nil {
					return nil, err
				}
				node.AddChild(params)
			}

			if !par.peekIs(token.RIGHT_PAREN) {
				return nil, errs.NewSyntax(errs.ParenthesesNotClosed, "MethodCallExpression", par.stream.TokenPosition())
			}
			node.AddChild(par.makeFactorNext()) // `)`
			callee = node

		default:
			return callee, nil
		}
	}
}

// callParams parses
//
//	CallParams ::= Expression (`,` Expression)* `,`?
func (par *Parser) callParams() (*cst.Node, error) {
	node := cst.NewNode(cst.CALL_PARAMS)

	// Argument lists re-admit struct literals even inside a scrutinee.
	saved := par.noStructLiteral
	par.noStructLiteral = false
	defer func() { par.noStructLiteral = saved }()

	expression, err := par.expression()
	if err != nil {
		return nil, err
	}
	node.AddChild(expression)

	for par.peekIs(token.COMMA_DELIM) {
		comma := par.makeFactorNext()

		expression, err := par.expression()
		if err != nil {
			// Trailing comma.
			node.AddChild(comma)
			break
		}
		node.AddChild(comma)
		node.AddChild(expression)
	}

	return node, nil
}

// returnExpression parses
//
//	ReturnExpression ::= `return` Expression?
func (par *Parser) returnExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("ReturnExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	returnKeyword, err := par.expectKeyword(key, token.KW_RETURN)
	if err != nil {
		return nil, err
	}
	node := cst.NewNode(cst.RETURN_EXPRESSION, returnKeyword)

	if expression, exprErr := par.expression(); exprErr == nil {
		node.AddChild(expression)
	}

	return par.succeed(key, node)
}

// scrutinee parses the expression tested by match and if/if-let heads.
// Struct expressions are excluded from this position: the operand layer
// suppresses them while the flag is set, and the parsed result is
// post-checked in case one slipped through a grouped form.
func (par *Parser) scrutinee() (*cst.Node, error) {
	key, memoNode, err := par.enter("Scrutinee")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	saved := par.noStructLiteral
	par.noStructLiteral = true
	expression, err := par.expression()
	par.noStructLiteral = saved

	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	if expression.NodeKind == cst.EXPRESSION_WITHOUT_BLOCK &&
		expression.FirstChildOfKind(cst.STRUCT_EXPRESSION) != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}

	return par.succeed(key, expression)
}
