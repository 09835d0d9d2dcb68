package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// Block-flavored expressions.
//
//	ExpressionWithBlock ::= OuterAttribute*
//	                        ( BlockExpression | IfExpression | IfLetExpression
//	                        | MatchExpression | ConstBlockExpression
//	                        | UnsafeBlockExpression | LoopExpression )

// expressionWithBlock dispatches on the block-starting keyword. Attempt
// order: block, if (plain before if-let so the cheaper rule commits
// first), if-let, match, loop, const block, unsafe block.
func (par *Parser) expressionWithBlock() (*cst.Node, error) {
	key, memoNode, err := par.enter("ExpressionWithBlock")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.EXPRESSION_WITH_BLOCK)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	alternatives := []func() (*cst.Node, error){
		par.blockExpression,
		par.ifExpression,
		par.ifLetExpression,
		par.matchExpression,
		par.loopExpression,
		par.constBlockExpression,
		par.unsafeBlockExpression,
	}
	for _, alternative := range alternatives {
		expr, altErr := alternative()
		if altErr == nil {
			node.AddChild(expr)
			return par.succeed(key, node)
		}
	}

	return par.errorAt(errs.NotMatch, key)
}

// blockExpression parses
//
//	BlockExpression ::= `{` InnerAttribute* Statements? `}`
func (par *Parser) blockExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("BlockExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIs(token.LEFT_BRACE) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node := cst.NewNode(cst.BLOCK_EXPRESSION, par.makeFactorNext())

	// InnerAttribute*
	for {
		attribute, attrErr := par.innerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	// Statements?
	if statements, stmtErr := par.statements(); stmtErr == nil {
		node.AddChild(statements)
	}

	if !par.peekIs(token.RIGHT_BRACE) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node.AddChild(par.makeFactorNext())

	return par.succeed(key, node)
}

// ifExpression parses
//
//	IfExpression ::= `if` Scrutinee BlockExpression
//	                 (`else` (BlockExpression | IfExpression | IfLetExpression))?
//
// The condition is a scrutinee: struct literals are excluded so that the
// opening brace of the consequent is not swallowed.
func (par *Parser) ifExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("IfExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_IF) {
		return par.errorAt(errs.NotMatch, key)
	}
	// An `if` directly followed by `let` belongs to ifLetExpression.
	if par.stream.PeekAhead(1).IsKeyword(token.KW_LET) {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.IF_EXPRESSION, par.makeFactorNext())

	condition, err := par.scrutinee()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(condition)

	consequent, err := par.blockExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(consequent)

	if elseTail, elseErr := par.elseTail(key); elseErr != nil {
		return nil, elseErr
	} else if elseTail != nil {
		node.Children = append(node.Children, elseTail...)
	}

	return par.succeed(key, node)
}

// ifLetExpression parses
//
//	IfLetExpression ::= `if` `let` Pattern `=` Scrutinee BlockExpression
//	                    (`else` (BlockExpression | IfExpression | IfLetExpression))?
func (par *Parser) ifLetExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("IfLetExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_IF) {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.IF_LET_EXPRESSION, par.makeFactorNext())

	if !par.peekIsKeyword(token.KW_LET) {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(par.makeFactorNext())

	pattern, err := par.pattern()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(pattern)

	equal, err := par.expectKind(key, token.EQUAL_OP)
	if err != nil {
		return nil, err
	}
	node.AddChild(equal)

	scrutinee, err := par.scrutinee()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(scrutinee)

	block, err := par.blockExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(block)

	if elseTail, elseErr := par.elseTail(key); elseErr != nil {
		return nil, elseErr
	} else if elseTail != nil {
		node.Children = append(node.Children, elseTail...)
	}

	return par.succeed(key, node)
}

// elseTail parses the optional else arm shared by if and if-let. It
// returns nil children when no `else` is present; a present `else` must
// be followed by a block, if, or if-let.
func (par *Parser) elseTail(key memoKey) ([]*cst.Node, error) {
	if !par.peekIsKeyword(token.KW_ELSE) {
		return nil, nil
	}
	elseKeyword := par.makeFactorNext()

	if block, err := par.blockExpression(); err == nil {
		return []*cst.Node{elseKeyword, block}, nil
	}
	if ifExpr, err := par.ifExpression(); err == nil {
		return []*cst.Node{elseKeyword, ifExpr}, nil
	}
	if ifLet, err := par.ifLetExpression(); err == nil {
		return []*cst.Node{elseKeyword, ifLet}, nil
	}

	_, err := par.errorAt(errs.ExpectedToken, key)
	return nil, err
}

// matchExpression parses
//
//	MatchExpression ::= `match` Scrutinee `{` InnerAttribute* MatchArms? `}`
func (par *Parser) matchExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("MatchExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_MATCH) {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.MATCH_EXPRESSION, par.makeFactorNext())

	scrutinee, err := par.scrutinee()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(scrutinee)

	leftBrace, err := par.expectKind(key, token.LEFT_BRACE)
	if err != nil {
		return nil, err
	}
	node.AddChild(leftBrace)

	// InnerAttribute*
	for {
		attribute, attrErr := par.innerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	// MatchArms?
	if arms, armsErr := par.matchArms(); armsErr == nil {
		node.AddChild(arms)
	}

	rightBrace, err := par.expectKind(key, token.RIGHT_BRACE)
	if err != nil {
		return nil, err
	}
	node.AddChild(rightBrace)

	return par.succeed(key, node)
}

// matchArms parses
//
//	MatchArms ::= MatchArm `=>` Expression (`,` MatchArm `=>` Expression)* `,`?
func (par *Parser) matchArms() (*cst.Node, error) {
	key, memoNode, err := par.enter("MatchArms")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.MATCH_ARMS)

	arm, err := par.matchArm()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(arm)

	fatArrow, err := par.expectGlued(key, token.FAT_ARROW)
	if err != nil {
		return nil, err
	}
	node.AddChild(fatArrow)

	expression, err := par.expression()
	if err != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node.AddChild(expression)

	for par.peekIs(token.COMMA_DELIM) {
		comma := par.makeFactorNext()

		arm, armErr := par.matchArm()
		if armErr != nil {
			// Trailing comma before the closing brace.
			node.AddChild(comma)
			break
		}
		node.AddChild(comma)
		node.AddChild(arm)

		fatArrow, err := par.expectGlued(key, token.FAT_ARROW)
		if err != nil {
			return nil, err
		}
		node.AddChild(fatArrow)

		expression, err := par.expression()
		if err != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(expression)
	}

	return par.succeed(key, node)
}

// matchArm parses
//
//	MatchArm      ::= OuterAttribute* Pattern MatchArmGuard?
//	MatchArmGuard ::= `if` Expression
func (par *Parser) matchArm() (*cst.Node, error) {
	key, memoNode, err := par.enter("MatchArm")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.MATCH_ARM)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	pattern, err := par.pattern()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(pattern)

	// MatchArmGuard?
	if par.peekIsKeyword(token.KW_IF) {
		node.AddChild(par.makeFactorNext())

		guard, guardErr := par.expression()
		if guardErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(guard)
	}

	return par.succeed(key, node)
}

// loopExpression parses
//
//	LoopExpression ::= `loop` BlockExpression
func (par *Parser) loopExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("LoopExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_LOOP) {
		return par.errorAt(errs.NotMatch, key)
	}
	loopKeyword := par.makeFactorNext()

	block, err := par.blockExpression()
	if err != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}

	node := cst.NewNode(cst.LOOP_EXPRESSION, loopKeyword, block)
	return par.succeed(key, node)
}

// constBlockExpression parses
//
//	ConstBlockExpression ::= `const` BlockExpression
func (par *Parser) constBlockExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("ConstBlockExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_CONST) {
		return par.errorAt(errs.NotMatch, key)
	}
	constKeyword := par.makeFactorNext()

	block, err := par.blockExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	node := cst.NewNode(cst.CONST_BLOCK_EXPRESSION, constKeyword, block)
	return par.succeed(key, node)
}

// unsafeBlockExpression parses
//
//	UnsafeBlockExpression ::= `unsafe` BlockExpression
func (par *Parser) unsafeBlockExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("UnsafeBlockExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_UNSAFE) {
		return par.errorAt(errs.NotMatch, key)
	}
	unsafeKeyword := par.makeFactorNext()

	block, err := par.blockExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	node := cst.NewNode(cst.UNSAFE_BLOCK_EXPRESSION, unsafeKeyword, block)
	return par.succeed(key, node)
}
