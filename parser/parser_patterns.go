package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// Pattern parsing.
//
//	Pattern             ::= `|`? PatternNoTopAlt (`|` PatternNoTopAlt)*
//	PatternNoTopAlt     ::= PatternWithoutRange
//	PatternWithoutRange ::= LiteralPattern | IdentifierPattern
//	                      | WildcardPattern | RestPattern | ReferencePattern
//	LiteralPattern      ::= `true` | `false` | literal | `-`? INT | `-`? FLOAT
//	IdentifierPattern   ::= `ref`? `mut`? Identifier (`@` PatternNoTopAlt)?
//	WildcardPattern     ::= `_`
//	RestPattern         ::= `..`
//	ReferencePattern    ::= (`&` | `&&`) `mut`? PatternWithoutRange
//
// Range patterns are reserved.

// pattern parses a top-level pattern with alternation.
func (par *Parser) pattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("Pattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.PATTERN)

	// `|`?
	if par.peekIs(token.OR_OP) && par.stream.PeekGlue().Kind == token.OR_OP {
		node.AddChild(par.makeFactorNext())
	}

	first, err := par.patternNoTopAlt()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(first)

	// (`|` PatternNoTopAlt)*
	for par.peekIs(token.OR_OP) && par.stream.PeekGlue().Kind == token.OR_OP {
		savedPosition := par.stream.TokenPosition()
		bar := par.makeFactorNext()

		alternative, altErr := par.patternNoTopAlt()
		if altErr != nil {
			par.stream.SetPosition(savedPosition)
			break
		}
		node.AddChild(bar)
		node.AddChild(alternative)
	}

	return par.succeed(key, node)
}

// patternNoTopAlt parses a pattern without top-level alternation.
func (par *Parser) patternNoTopAlt() (*cst.Node, error) {
	key, memoNode, err := par.enter("PatternNoTopAlt")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	pattern, err := par.patternWithoutRange()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	return par.succeed(key, pattern)
}

// patternWithoutRange dispatches over the pattern sub-forms. Attempt
// order: literal, identifier, wildcard, rest, reference.
func (par *Parser) patternWithoutRange() (*cst.Node, error) {
	key, memoNode, err := par.enter("PatternWithoutRange")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	alternatives := []func() (*cst.Node, error){
		par.literalPattern,
		par.identifierPattern,
		par.wildcardPattern,
		par.restPattern,
		par.referencePattern,
	}
	for _, alternative := range alternatives {
		pattern, altErr := alternative()
		if altErr == nil {
			return par.succeed(key, pattern)
		}
	}

	return par.errorAt(errs.NotMatch, key)
}

// literalPattern parses a literal pattern, including negated numbers.
func (par *Parser) literalPattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("LiteralPattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	tok := par.stream.Peek()
	switch {
	case tok.IsKeyword(token.KW_TRUE):
		node := cst.NewNode(cst.LITERAL_PATTERN, cst.NewLiteral(par.stream.Next(), token.NewBoolLiteral(true)))
		node.Literal = token.NewBoolLiteral(true)
		return par.succeed(key, node)

	case tok.IsKeyword(token.KW_FALSE):
		node := cst.NewNode(cst.LITERAL_PATTERN, cst.NewLiteral(par.stream.Next(), token.NewBoolLiteral(false)))
		node.Literal = token.NewBoolLiteral(false)
		return par.succeed(key, node)

	case tok.Kind == token.LITERAL_KIND:
		node := cst.NewNode(cst.LITERAL_PATTERN, cst.NewLiteral(par.stream.Next(), tok.Literal))
		node.Literal = tok.Literal
		return par.succeed(key, node)

	case tok.Kind == token.MINUS_OP:
		minus := par.makeFactorNext()
		negated := par.stream.Peek()
		if negated.Kind != token.LITERAL_KIND || negated.Literal == nil {
			return par.errorAt(errs.NotMatch, key)
		}
		if negated.Literal.Kind != token.INTEGER_LITERAL && negated.Literal.Kind != token.FLOAT_LITERAL {
			return par.errorAt(errs.NotMatch, key)
		}
		node := cst.NewNode(cst.LITERAL_PATTERN, minus, cst.NewLiteral(par.stream.Next(), negated.Literal))
		node.Literal = negated.Literal
		return par.succeed(key, node)
	}

	return par.errorAt(errs.NotMatch, key)
}

// identifierPattern parses a binding pattern with optional ref/mut
// markers and an optional sub-pattern after `@`.
func (par *Parser) identifierPattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("IdentifierPattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	node := cst.NewNode(cst.IDENTIFIER_PATTERN)

	// `ref`?
	if par.peekIsKeyword(token.KW_REF) {
		node.AddChild(par.makeFactorNext())
	}
	// `mut`?
	if par.peekIsKeyword(token.KW_MUT) {
		node.AddChild(par.makeFactorNext())
	}

	if !par.peekIs(token.IDENTIFIER_KIND) {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(par.makeFactorNext())

	// (`@` PatternNoTopAlt)?
	if par.peekIs(token.AT_SYMBOL) {
		node.AddChild(par.makeFactorNext())

		sub, subErr := par.patternNoTopAlt()
		if subErr != nil {
			return par.errorAt(errs.ExpectedToken, key)
		}
		node.AddChild(sub)
	}

	return par.succeed(key, node)
}

// wildcardPattern parses the `_` pattern.
func (par *Parser) wildcardPattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("WildcardPattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if !par.peekIs(token.UNDERSCORE) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node := cst.NewNode(cst.WILDCARD_PATTERN, par.makeFactorNext())
	return par.succeed(key, node)
}

// restPattern parses the `..` pattern.
func (par *Parser) restPattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("RestPattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	if par.stream.PeekGlue().Kind != token.DOTDOT_OP {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node := cst.NewNode(cst.REST_PATTERN, cst.NewFactor(par.stream.NextGlue()))
	return par.succeed(key, node)
}

// referencePattern parses `&` or `&&` followed by an optional `mut` and a
// pattern without range.
func (par *Parser) referencePattern() (*cst.Node, error) {
	key, memoNode, err := par.enter("ReferencePattern")
	if memoNode != nil || err != nil {
		return memoNode, err
	}

	glued := par.stream.PeekGlue()
	if glued.Kind != token.AND_OP && glued.Kind != token.ANDAND_OP {
		return par.errorAt(errs.ExpectedToken, key)
	}
	node := cst.NewNode(cst.REFERENCE_PATTERN, cst.NewFactor(par.stream.NextGlue()))

	// `mut`?
	if par.peekIsKeyword(token.KW_MUT) {
		node.AddChild(par.makeFactorNext())
	}

	inner, err := par.patternWithoutRange()
	if err != nil {
		return par.errorAt(errs.NotMatch, key)
	}
	node.AddChild(inner)

	return par.succeed(key, node)
}
