package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// Struct expression parsing.
//
//	StructExpression ::= StructExprStruct
//	StructExprStruct ::= PathInExpression `{` (StructExprFields | StructBase)? `}`
//	StructExprFields ::= StructExprField (`,` StructExprField)* (`,` StructBase | `,`?)
//	StructExprField  ::= OuterAttribute* ( Identifier | (Identifier | TUPLE_INDEX) `:` Expression )
//	StructBase       ::= `..` Expression

// structExpression parses a struct literal.
func (par *Parser) structExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("StructExpression")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	inner, err := par.structExprStruct()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	node := cst.NewNode(cst.STRUCT_EXPRESSION, inner)
	return par.succeed(key, node)
}

// structExprStruct parses the braced struct form.
func (par *Parser) structExprStruct() (*cst.Node, error) {
	key, memoNode, err := par.enter("StructExprStruct")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	path, err := par.pathInExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	if !par.peekIs(token.LEFT_BRACE) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	leftBrace := par.makeFactorNext()

	node := cst.NewNode(cst.STRUCT_EXPR_STRUCT, path, leftBrace)

	// (StructExprFields | StructBase)?
	if fields, fieldsErr := par.structExprFields(); fieldsErr == nil {
		node.AddChild(fields)
	} else if base, baseErr := par.structBase(); baseErr == nil {
		node.AddChild(base)
	}

	if !par.peekIs(token.RIGHT_BRACE) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node.AddChild(par.makeFactorNext())

	return par.succeed(key, node)
}

// structExprFields parses the field list of a struct literal.
func (par *Parser) structExprFields() (*cst.Node, error) {
	key, memoNode, err := par.enter("StructExprFields")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	field, err := par.structExprField()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.STRUCT_EXPR_FIELDS, field)

	for par.peekIs(token.COMMA_DELIM) {
		comma := par.makeFactorNext()

		if base, baseErr := par.structBase(); baseErr == nil {
			node.AddChild(comma)
			node.AddChild(base)
			break
		}

		field, fieldErr := par.structExprField()
		if fieldErr != nil {
			// Trailing comma.
			node.AddChild(comma)
			break
		}
		node.AddChild(comma)
		node.AddChild(field)
	}

	return par.succeed(key, node)
}

// structExprField parses one field initializer, shorthand or `name: expr`.
func (par *Parser) structExprField() (*cst.Node, error) {
	key, memoNode, err := par.enter("StructExprField")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.STRUCT_EXPR_FIELD)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	// Identifier | TUPLE_INDEX
	tok := par.stream.Peek()
	isIdentifier := false
	switch {
	case tok.Kind == token.IDENTIFIER_KIND:
		isIdentifier = true
		node.AddChild(par.makeFactorNext())
	case tok.Kind == token.LITERAL_KIND && tok.Literal != nil && tok.Literal.Kind == token.INTEGER_LITERAL:
		node.AddChild(par.makeFactorNext())
	default:
		return par.errorAt(errs.NotMatch, key)
	}

	// Shorthand form stops before a missing colon, but only for plain
	// identifiers; a tuple index always needs its expression.
	if !par.peekIs(token.COLON_DELIM) {
		if !isIdentifier {
			return par.errorAt(errs.NotMatch, key)
		}
		return par.succeed(key, node)
	}
	node.AddChild(par.makeFactorNext()) // `:`

	expression, err := par.expression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(expression)

	return par.succeed(key, node)
}

// structBase parses the functional-update base of a struct literal.
func (par *Parser) structBase() (*cst.Node, error) {
	key, memoNode, err := par.enter("StructBase")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if par.stream.PeekGlue().Kind != token.DOTDOT_OP {
		return par.errorAt(errs.ExpectedToken, key)
	}
	dotdot := cst.NewFactor(par.stream.NextGlue())

	expression, err := par.expression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}

	node := cst.NewNode(cst.STRUCT_BASE, dotdot, expression)
	return par.succeed(key, node)
}
