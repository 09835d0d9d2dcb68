package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// Items, attributes, functions and type annotations.
//
//	InnerAttribute     ::= `#` `!` `[` Attribute `]`
//	OuterAttribute     ::= `#` `[` Attribute `]`
//	Attribute          ::= SimplePath (`=` Expression)?
//	SimplePath         ::= `::`? Identifier (`::` Identifier)*
//	Item               ::= OuterAttribute* VisItem
//	VisItem            ::= Visibility? Function
//	Visibility         ::= `pub` (`(` (`crate` | `self` | `super`) `)`)?
//	Function           ::= FunctionQualifiers `fn` Identifier GenericParams?
//	                       `(` FunctionParameters? `)`
//	                       FunctionReturnType? (BlockExpression | `;`)
//	FunctionQualifiers ::= `const`? `async`? (`safe` | `unsafe`)? (`extern` Abi?)?

// innerAttribute parses a crate- or block-level attribute.
func (par *Parser) innerAttribute() (*cst.Node, error) {
	key, memoNode, err := par.enter("InnerAttribute")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	pound, err := par.expectKind(key, token.POUND_SYMBOL)
	if err != nil {
		return nil, err
	}
	exclamation, err := par.expectKind(key, token.NOT_OP)
	if err != nil {
		return nil, err
	}
	leftBracket, err := par.expectKind(key, token.LEFT_BRACKET)
	if err != nil {
		return nil, err
	}

	attribute, err := par.attribute()
	if err != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}

	rightBracket, err := par.expectKind(key, token.RIGHT_BRACKET)
	if err != nil {
		return nil, err
	}

	node := cst.NewNode(cst.INNER_ATTRIBUTE, pound, exclamation, leftBracket, attribute, rightBracket)
	return par.succeed(key, node)
}

// outerAttribute parses an item-level attribute.
func (par *Parser) outerAttribute() (*cst.Node, error) {
	key, memoNode, err := par.enter("OuterAttribute")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	pound, err := par.expectKind(key, token.POUND_SYMBOL)
	if err != nil {
		return nil, err
	}
	if par.peekIs(token.NOT_OP) {
		// `#!` is an inner attribute, not ours.
		return par.errorAt(errs.NotMatch, key)
	}
	leftBracket, err := par.expectKind(key, token.LEFT_BRACKET)
	if err != nil {
		return nil, err
	}

	attribute, err := par.attribute()
	if err != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}

	rightBracket, err := par.expectKind(key, token.RIGHT_BRACKET)
	if err != nil {
		return nil, err
	}

	node := cst.NewNode(cst.OUTER_ATTRIBUTE, pound, leftBracket, attribute, rightBracket)
	return par.succeed(key, node)
}

// attribute parses the path (and optional `= Expression` input) inside
// the attribute brackets. Delimited inputs such as `derive(...)` are not
// parsed.
func (par *Parser) attribute() (*cst.Node, error) {
	key, memoNode, err := par.enter("Attribute")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	path, err := par.simplePath()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.ATTRIBUTE, path)

	if par.peekIs(token.EQUAL_OP) && par.stream.PeekGlue().Kind == token.EQUAL_OP {
		node.AddChild(par.makeFactorNext())

		expression, exprErr := par.expression()
		if exprErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(expression)
	}

	return par.succeed(key, node)
}

// simplePath parses the identifier chain of an attribute path.
func (par *Parser) simplePath() (*cst.Node, error) {
	key, memoNode, err := par.enter("SimplePath")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.SIMPLE_PATH)

	if par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		node.AddChild(cst.NewFactor(par.stream.NextGlue()))
	}

	segment, err := par.expectKind(key, token.IDENTIFIER_KIND)
	if err != nil {
		return nil, err
	}
	node.AddChild(segment)

	for par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		savedPosition := par.stream.TokenPosition()
		separator := cst.NewFactor(par.stream.NextGlue())

		if !par.peekIs(token.IDENTIFIER_KIND) {
			par.stream.SetPosition(savedPosition)
			break
		}
		node.AddChild(separator)
		node.AddChild(par.makeFactorNext())
	}

	return par.succeed(key, node)
}

// visibility parses a `pub` marker with its optional scope restriction.
func (par *Parser) visibility() (*cst.Node, error) {
	key, memoNode, err := par.enter("Visibility")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIsKeyword(token.KW_PUB) {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.VISIBILITY, par.makeFactorNext())

	if par.peekIs(token.LEFT_PAREN) {
		restricted := par.stream.PeekAhead(1)
		if restricted.IsKeyword(token.KW_CRATE) ||
			restricted.IsKeyword(token.KW_SELF_VALUE) ||
			restricted.IsKeyword(token.KW_SUPER) {
			node.AddChild(par.makeFactorNext()) // `(`
			node.AddChild(par.makeFactorNext()) // scope keyword

			rightParen, parenErr := par.expectKind(key, token.RIGHT_PAREN)
			if parenErr != nil {
				return nil, parenErr
			}
			node.AddChild(rightParen)
		}
	}

	return par.succeed(key, node)
}

// item parses one top-level item. Collected outer attributes and the
// optional visibility are attached as leading children of the item node.
func (par *Parser) item() (*cst.Node, error) {
	key, memoNode, err := par.enter("Item")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	var leading []*cst.Node

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		leading = append(leading, attribute)
	}

	// Visibility?
	if vis, visErr := par.visibility(); visErr == nil {
		leading = append(leading, vis)
	}

	// Function is the only item form so far.
	function, err := par.function()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	function.Children = append(leading, function.Children...)

	return par.succeed(key, function)
}

// function parses a function item.
func (par *Parser) function() (*cst.Node, error) {
	key, memoNode, err := par.enter("Function")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.FUNCTION)

	qualifiers, err := par.functionQualifiers()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(qualifiers)

	fnKeyword, err := par.expectKeyword(key, token.KW_FN)
	if err != nil {
		return nil, err
	}
	node.AddChild(fnKeyword)

	identifier, err := par.expectKind(key, token.IDENTIFIER_KIND)
	if err != nil {
		return nil, err
	}
	node.AddChild(identifier)

	// GenericParams?
	if generics, genErr := par.genericParams(); genErr == nil {
		node.AddChild(generics)
	}

	leftParen, err := par.expectKind(key, token.LEFT_PAREN)
	if err != nil {
		return nil, err
	}
	node.AddChild(leftParen)

	// FunctionParameters?
	if parameters, paramErr := par.functionParameters(); paramErr == nil {
		node.AddChild(parameters)
	}

	if !par.peekIs(token.RIGHT_PAREN) {
		return par.errorAt(errs.ParenthesesNotClosed, key)
	}
	node.AddChild(par.makeFactorNext())

	// FunctionReturnType?
	if returnType, retErr := par.functionReturnType(); retErr == nil {
		node.AddChild(returnType)
	}

	// (BlockExpression | `;`)
	if par.peekIs(token.SEMICOLON_DELIM) {
		node.AddChild(par.makeFactorNext())
		return par.succeed(key, node)
	}
	block, err := par.blockExpression()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(block)

	return par.succeed(key, node)
}

// functionQualifiers parses the qualifier run before `fn`. Every part is
// optional, so the rule always succeeds.
func (par *Parser) functionQualifiers() (*cst.Node, error) {
	key, memoNode, err := par.enter("FunctionQualifiers")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.FUNCTION_QUALIFIERS)

	// `const`?
	if par.peekIsKeyword(token.KW_CONST) {
		node.AddChild(par.makeFactorNext())
	}

	// `async`?
	if par.peekIsKeyword(token.KW_ASYNC) {
		node.AddChild(par.makeFactorNext())
	}

	// (`safe` | `unsafe`)?
	if par.peekIsKeyword(token.KW_UNSAFE) {
		node.AddChild(par.makeFactorNext())
	} else if tok := par.stream.Peek(); tok.Kind == token.IDENTIFIER_KIND && tok.Text == "safe" {
		node.AddChild(par.makeFactorNext())
	}

	// (`extern` Abi?)?
	if par.peekIsKeyword(token.KW_EXTERN) {
		node.AddChild(par.makeFactorNext())

		if abi, abiErr := par.abi(); abiErr == nil {
			node.AddChild(abi)
		}
	}

	return par.succeed(key, node)
}

// abi parses the string literal naming an extern ABI.
func (par *Parser) abi() (*cst.Node, error) {
	key, memoNode, err := par.enter("Abi")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	tok := par.stream.Peek()
	if tok.Kind != token.LITERAL_KIND || tok.Literal == nil {
		return par.errorAt(errs.ExpectedToken, key)
	}
	if tok.Literal.Kind != token.STR_LITERAL && tok.Literal.Kind != token.STR_RAW_LITERAL {
		return par.errorAt(errs.ExpectedToken, key)
	}

	return par.succeed(key, cst.NewLiteral(par.stream.Next(), tok.Literal))
}

// genericParams parses `<` `>` or `<` Identifier (`,` Identifier)* `,`? `>`.
func (par *Parser) genericParams() (*cst.Node, error) {
	key, memoNode, err := par.enter("GenericParams")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIs(token.LT_OP) || par.stream.PeekGlue().Kind != token.LT_OP {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.GENERIC_PARAMS, par.makeFactorNext())

	if par.peekIs(token.GT_OP) {
		node.AddChild(par.makeFactorNext())
		return par.succeed(key, node)
	}

	param, err := par.expectKind(key, token.IDENTIFIER_KIND)
	if err != nil {
		return nil, err
	}
	node.AddChild(param)

	for par.peekIs(token.COMMA_DELIM) {
		node.AddChild(par.makeFactorNext())

		if !par.peekIs(token.IDENTIFIER_KIND) {
			break
		}
		node.AddChild(par.makeFactorNext())
	}

	closing, err := par.expectKind(key, token.GT_OP)
	if err != nil {
		return nil, err
	}
	node.AddChild(closing)

	return par.succeed(key, node)
}

// functionParameters parses
//
//	FunctionParameters ::= SelfParam `,`?
//	                     | (SelfParam `,`)? FunctionParam (`,` FunctionParam)* `,`?
func (par *Parser) functionParameters() (*cst.Node, error) {
	key, memoNode, err := par.enter("FunctionParameters")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.FUNCTION_PARAMETERS)

	selfParam, selfErr := par.selfParam()
	hasSelf := selfErr == nil
	if hasSelf {
		node.AddChild(selfParam)
	}

	hasComma := false
	if par.peekIs(token.COMMA_DELIM) {
		if !hasSelf {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(par.makeFactorNext())
		hasComma = true
	}

	// SelfParam alone, with optional trailing comma.
	if hasSelf && !hasComma {
		return par.succeed(key, node)
	}

	param, err := par.functionParam()
	if err != nil {
		if hasSelf {
			// SelfParam with trailing comma only.
			return par.succeed(key, node)
		}
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(param)

	for par.peekIs(token.COMMA_DELIM) {
		comma := par.makeFactorNext()

		param, paramErr := par.functionParam()
		if paramErr != nil {
			// Trailing comma.
			node.AddChild(comma)
			break
		}
		node.AddChild(comma)
		node.AddChild(param)
	}

	return par.succeed(key, node)
}

// selfParam parses
//
//	SelfParam     ::= OuterAttribute* (ShorthandSelf | TypedSelf)
//	ShorthandSelf ::= `&`? `mut`? `self`
//	TypedSelf     ::= `mut`? `self` `:` Type
func (par *Parser) selfParam() (*cst.Node, error) {
	key, memoNode, err := par.enter("SelfParam")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.SELF_PARAM)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	if par.peekIs(token.AND_OP) && par.stream.PeekGlue().Kind == token.AND_OP {
		node.AddChild(par.makeFactorNext())
	}
	if par.peekIsKeyword(token.KW_MUT) {
		node.AddChild(par.makeFactorNext())
	}

	selfKeyword, err := par.expectKeyword(key, token.KW_SELF_VALUE)
	if err != nil {
		return nil, err
	}
	node.AddChild(selfKeyword)

	// TypedSelf tail: `:` Type
	if par.peekIs(token.COLON_DELIM) && par.stream.PeekGlue().Kind != token.PATH_SEPARATOR {
		node.AddChild(par.makeFactorNext())

		typeExpression, typeErr := par.typeExpression()
		if typeErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(typeExpression)
	}

	return par.succeed(key, node)
}

// functionParam parses
//
//	FunctionParam        ::= OuterAttribute* (FunctionParamPattern | `...` | Type)
//	FunctionParamPattern ::= PatternNoTopAlt `:` (Type | `...`)
func (par *Parser) functionParam() (*cst.Node, error) {
	key, memoNode, err := par.enter("FunctionParam")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.FUNCTION_PARAM)

	// OuterAttribute*
	for {
		attribute, attrErr := par.outerAttribute()
		if attrErr != nil {
			break
		}
		node.AddChild(attribute)
	}

	// `...`
	if par.stream.PeekGlue().Kind == token.DOTDOTDOT_OP {
		node.AddChild(cst.NewFactor(par.stream.NextGlue()))
		return par.succeed(key, node)
	}

	// FunctionParamPattern
	if pattern, patternErr := par.functionParamPattern(); patternErr == nil {
		node.AddChild(pattern)
		return par.succeed(key, node)
	}

	// Type
	if typeExpression, typeErr := par.typeExpression(); typeErr == nil {
		node.AddChild(typeExpression)
		return par.succeed(key, node)
	}

	return par.errorAt(errs.NotMatch, key)
}

// functionParamPattern parses the `pattern: type` form of a parameter.
func (par *Parser) functionParamPattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("FunctionParamPattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	pattern, err := par.patternNoTopAlt()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node := cst.NewNode(cst.FUNCTION_PARAM_PATTERN, pattern)

	if !par.peekIs(token.COLON_DELIM) || par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(par.makeFactorNext())

	if par.stream.PeekGlue().Kind == token.DOTDOTDOT_OP {
		node.AddChild(cst.NewFactor(par.stream.NextGlue()))
		return par.succeed(key, node)
	}

	typeExpression, err := par.typeExpression()
	if err != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node.AddChild(typeExpression)

	return par.succeed(key, node)
}

// functionReturnType parses `->` Type.
func (par *Parser) functionReturnType() (*cst.Node, error) {
	key, memoNode, err := par.enter("FunctionReturnType")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if par.stream.PeekGlue().Kind != token.RIGHT_ARROW {
		return par.errorAt(errs.NotMatch, key)
	}
	arrow := cst.NewFactor(par.stream.NextGlue())

	typeExpression, err := par.typeExpression()
	if err != nil {
		return par.errorAt(errs.ExpectedToken, key)
	}

	node := cst.NewNode(cst.FUNCTION_RETURN_TYPE, arrow, typeExpression)
	return par.succeed(key, node)
}

// typeExpression parses the closed set of type annotations:
//
//	Type          ::= ReferenceType | GroupedType | TypePath
//	ReferenceType ::= `&` `mut`? Type
//	GroupedType   ::= `(` Type `)`
//	TypePath      ::= `::`? Identifier (`::` Identifier)*
func (par *Parser) typeExpression() (*cst.Node, error) {
	key, memoNode, err := par.enter("Type")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	// ReferenceType
	if par.peekIs(token.AND_OP) && par.stream.PeekGlue().Kind == token.AND_OP {
		node := cst.NewNode(cst.REFERENCE_TYPE, par.makeFactorNext())
		if par.peekIsKeyword(token.KW_MUT) {
			node.AddChild(par.makeFactorNext())
		}

		inner, innerErr := par.typeExpression()
		if innerErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(inner)
		return par.succeed(key, node)
	}

	// GroupedType
	if par.peekIs(token.LEFT_PAREN) {
		node := cst.NewNode(cst.GROUPED_TYPE, par.makeFactorNext())

		inner, innerErr := par.typeExpression()
		if innerErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(inner)

		if !par.peekIs(token.RIGHT_PAREN) {
			return par.errorAt(errs.ParenthesesNotClosed, key)
		}
		node.AddChild(par.makeFactorNext())
		return par.succeed(key, node)
	}

	// TypePath
	node := cst.NewNode(cst.TYPE_PATH)
	if par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		node.AddChild(cst.NewFactor(par.stream.NextGlue()))
	}

	if !par.peekIs(token.IDENTIFIER_KIND) {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(par.makeFactorNext())

	for par.stream.PeekGlue().Kind == token.PATH_SEPARATOR {
		savedPosition := par.stream.TokenPosition()
		separator := cst.NewFactor(par.stream.NextGlue())

		if !par.peekIs(token.IDENTIFIER_KIND) {
			par.stream.SetPosition(savedPosition)
			break
		}
		node.AddChild(separator)
		node.AddChild(par.makeFactorNext())
	}

	return par.succeed(key, node)
}
