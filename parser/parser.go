// Package parser implements the memoized (packrat) recursive-descent
// parser of the front-end. Each nonterminal of the grammar is a method
// returning either a lossless CST node or a value-typed syntax error.
//
// Memoization maps (token position, rule name) to one of three states:
// never attempted, in-progress, or a finished result with its end
// position. The in-progress sentinel doubles as the left-recursion guard:
// a rule that re-enters itself at the same position receives a Recursed
// error and the enclosing alternative moves on. A failing rule always
// leaves the cursor at the position it was entered with; only the
// successful branch commits.
//
// Operator expressions are parsed by a Pratt sub-parser driven by the
// binding power tables in precedence.go.
package parser

import (
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/lexer"
	"github.com/nagc-lang/nagc/token"
)

// memoKey addresses one memo entry: a rule attempted at a token position.
type memoKey struct {
	position int
	rule     string
}

// memoValue is a finished parse result together with the position the
// cursor reached when the rule succeeded.
type memoValue struct {
	node         *cst.Node
	nextPosition int
}

// memoState is the tri-state answer of a memo lookup.
type memoState int

const (
	memoNone      memoState = iota // rule never attempted here
	memoRecursive                  // rule is on the stack (or failed before)
	memoHit                        // finished result available
)

// Parser holds the parsing state: the token stream cursor, the packrat
// memo table, and the append-only trace log.
type Parser struct {
	stream *TokenStream
	memo   map[memoKey]*memoValue
	trace  traceLog

	// noStructLiteral suppresses struct-literal operands while a
	// scrutinee or condition is being parsed, resolving the ambiguity
	// between `S { .. }` and a block-starting context.
	noStructLiteral bool
}

// NewParser creates a parser over the raw lexer output. The stream cooks
// the tokens (trivia elided, keywords classified, literals normalized).
func NewParser(rawTokens []lexer.Token) *Parser {
	return &Parser{
		stream: NewTokenStream(rawTokens),
		memo:   make(map[memoKey]*memoValue),
	}
}

// Parse parses a whole source file and returns the root CST node.
func (par *Parser) Parse() (*cst.Node, error) {
	return par.crate()
}

// TraceLog returns the parse trace accumulated so far, one event per
// line, formatted as "Event Rule pos: P token: T".
func (par *Parser) TraceLog() string {
	return par.trace.String()
}

// WriteTraceLog appends the parse trace to the named file.
func (par *Parser) WriteTraceLog(fileName string) error {
	return par.trace.WriteFile(fileName)
}

// crate parses the top-level production:
//
//	Crate ::= InnerAttribute* Item* Expression? EOF
//
// The optional trailing expression admits bare-expression sources.
func (par *Parser) crate() (*cst.Node, error) {
	node := cst.NewNode(cst.CRATE)

	// InnerAttribute*
	for {
		attribute, err := par.innerAttribute()
		if err != nil {
			break
		}
		node.AddChild(attribute)
	}

	// Item*
	for {
		item, err := par.item()
		if err != nil {
			break
		}
		node.AddChild(item)
	}

	// Expression?
	if !par.stream.IsEOF() {
		if expression, err := par.expression(); err == nil {
			node.AddChild(expression)
		}
	}

	if !par.stream.IsEOF() {
		par.trace.log("Error(NotMatch)", "Crate", par.stream.TokenPosition(), par.stream.Peek())
		return nil, errs.NewSyntax(errs.NotMatch, "Crate", par.stream.TokenPosition())
	}

	par.trace.raw("Parse success\n")
	return node, nil
}

//
// Packrat machinery
//

// makeKey builds the memo key for a rule at the current cursor position.
func (par *Parser) makeKey(rule string) memoKey {
	return memoKey{
		position: par.stream.TokenPosition(),
		rule:     rule,
	}
}

// getMemo consults the memo table for the given key. On a hit the cursor
// is moved to the memoized end position.
func (par *Parser) getMemo(key memoKey) (*cst.Node, memoState) {
	entry, found := par.memo[key]
	if !found {
		par.trace.log("First call to", key.rule, key.position, par.stream.Peek())
		return nil, memoNone
	}
	if entry == nil {
		par.trace.log("Recursed", key.rule, key.position, par.stream.Peek())
		return nil, memoRecursive
	}

	par.trace.log("Use memo", key.rule, key.position, par.stream.Peek())
	par.stream.SetPosition(entry.nextPosition)
	return entry.node, memoHit
}

// writeMemo stores a result for the key. A nil node writes the
// in-progress sentinel; a finished node is stored together with the
// position the cursor has reached.
func (par *Parser) writeMemo(key memoKey, node *cst.Node) {
	par.trace.log("WriteMemo", key.rule, key.position, par.stream.Peek())
	if node == nil {
		par.memo[key] = nil
		return
	}
	par.memo[key] = &memoValue{
		node:         node,
		nextPosition: par.stream.TokenPosition(),
	}
}

// enter runs the common rule prologue. When the memo already holds a
// result or the rule is in progress, the returned node or error is final
// and the rule body must not run; otherwise the in-progress sentinel has
// been written and the body proceeds.
func (par *Parser) enter(rule string) (memoKey, *cst.Node, error) {
	key := par.makeKey(rule)
	node, state := par.getMemo(key)
	switch state {
	case memoHit:
		return key, node, nil
	case memoRecursive:
		_, err := par.errorAt(errs.Recursed, key)
		return key, nil, err
	}
	par.writeMemo(key, nil)
	return key, nil, nil
}

// succeed memoizes a finished node and returns it.
func (par *Parser) succeed(key memoKey, node *cst.Node) (*cst.Node, error) {
	par.writeMemo(key, node)
	return node, nil
}

// errorAt fails the rule identified by key: the event is traced, the
// cursor is rewound to the rule's entry position, and the syntax error is
// returned as a value.
func (par *Parser) errorAt(kind errs.SyntaxErrorKind, key memoKey) (*cst.Node, error) {
	par.trace.log("Error("+string(kind)+")", key.rule, key.position, par.stream.Peek())
	par.stream.SetPosition(key.position)
	return nil, errs.NewSyntax(kind, key.rule, key.position)
}

//
// Token consumption helpers
//

// makeFactor wraps the token at the cursor in a Factor leaf without
// consuming it.
func (par *Parser) makeFactor() *cst.Node {
	return cst.NewFactor(par.stream.Peek())
}

// makeFactorNext consumes the token at the cursor into a Factor leaf.
func (par *Parser) makeFactorNext() *cst.Node {
	return cst.NewFactor(par.stream.Next())
}

// makeOperatorNext consumes the glued operator at the cursor into an
// Operator node.
func (par *Parser) makeOperatorNext() *cst.Node {
	return cst.NewOperator(par.stream.NextGlue())
}

// expectKind consumes the token at the cursor when it has the wanted
// kind; otherwise the rule fails with ExpectedToken.
func (par *Parser) expectKind(key memoKey, kind token.Kind) (*cst.Node, error) {
	if par.stream.Peek().Kind != kind {
		return par.errorAt(errs.ExpectedToken, key)
	}
	return par.makeFactorNext(), nil
}

// expectGlued consumes the glued token at the cursor when it has the
// wanted composite kind; otherwise the rule fails with ExpectedToken.
func (par *Parser) expectGlued(key memoKey, kind token.Kind) (*cst.Node, error) {
	if par.stream.PeekGlue().Kind != kind {
		return par.errorAt(errs.ExpectedToken, key)
	}
	return cst.NewFactor(par.stream.NextGlue()), nil
}

// expectKeyword consumes the keyword at the cursor; otherwise the rule
// fails with ExpectedToken.
func (par *Parser) expectKeyword(key memoKey, keyword token.Keyword) (*cst.Node, error) {
	tok := par.stream.Peek()
	if !tok.IsKeyword(keyword) {
		return par.errorAt(errs.ExpectedToken, key)
	}
	return par.makeFactorNext(), nil
}

// peekIs reports whether the token at the cursor has the given kind.
func (par *Parser) peekIs(kind token.Kind) bool {
	return par.stream.Peek().Kind == kind
}

// peekIsKeyword reports whether the token at the cursor is the keyword.
func (par *Parser) peekIsKeyword(keyword token.Keyword) bool {
	tok := par.stream.Peek()
	return tok.IsKeyword(keyword)
}
