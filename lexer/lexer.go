// Package lexer performs lexical analysis (tokenization) of Naughtiness
// source code. It scans through the source text character by character,
// identifying and creating raw tokens for the syntactic elements of the
// language:
//   - Numeric literals (binary, octal, decimal, hexadecimal, floats)
//   - Character, string, byte-string and C-string literals (plain and raw)
//   - Identifiers and the underscore token
//   - Single-character operators and punctuation
//   - Comments (single-line // and multi-line /* */)
//   - Whitespace (emitted as tokens, elided by the token stream)
//
// The lexer is position-driven over the character sequence and never
// backtracks. It maintains row and column numbers (1-indexed, column reset
// on newline) for error reporting and stops at the first fatal error.
package lexer

import (
	"github.com/nagc-lang/nagc/errs"
)

// Lexer holds the scanning state over a source string.
//
// Fields:
//   - Src: The complete source code as a rune slice (Unicode-aware)
//   - Position: The current index into Src
//   - SrcLength: The total number of runes
//   - Row: The current row number in the source (1-indexed)
//   - Column: The current column number in the source (1-indexed)
type Lexer struct {
	Src       []rune
	Position  int
	SrcLength int
	Row       int
	Column    int
}

// NewLexer creates and initializes a new Lexer for the given source code.
//
// Example:
//
//	lex := NewLexer("ur x = 42;")
func NewLexer(src string) *Lexer {
	runes := []rune(src)
	return &Lexer{
		Src:       runes,
		Position:  0,
		SrcLength: len(runes),
		Row:       1,
		Column:    1,
	}
}

// Tokenize scans the entire source and returns all raw tokens, excluding
// the EOF sentinel. Scanning stops at the first fatal error, which is
// returned with its row and column.
func (lex *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)
	for {
		tok, err := lex.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF_TYPE {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// NextToken retrieves the next raw token from the source stream.
// Whitespace and comments are returned as tokens of their own so that
// every byte of the input belongs to exactly one token.
func (lex *Lexer) NextToken() (Token, error) {
	start := lex.Position
	row, column := lex.Row, lex.Column

	c := lex.current()
	switch {
	case c == 0:
		return NewToken(EOF_TYPE, "", row, column), nil

	case isWhitespace(c):
		for isWhitespace(lex.current()) {
			lex.advance()
		}
		return lex.newToken(WHITESPACE_TYPE, start, row, column), nil

	case c == '/' && lex.peek() == '/':
		lex.skipLineComment()
		return lex.newToken(COMMENT_TYPE, start, row, column), nil

	case c == '/' && lex.peek() == '*':
		if err := lex.skipBlockComment(row, column); err != nil {
			return Token{}, err
		}
		return lex.newToken(COMMENT_TYPE, start, row, column), nil

	case isDecDigit(c):
		return lex.number(start, row, column)

	case c == '\'':
		return lex.charLiteral(start, row, column, "")

	case c == '"':
		return lex.stringLiteral(start, row, column, "")

	case isIdentifierStart(c):
		return lex.identifierOrPrefixed(start, row, column)
	}

	if kind, ok := singleCharKind(c); ok {
		lex.advance()
		return lex.newToken(kind, start, row, column), nil
	}

	return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
		"unexpected character %q", string(c))
}

// current returns the rune at the current position, or 0 at end of input.
func (lex *Lexer) current() rune {
	if lex.Position >= lex.SrcLength {
		return 0
	}
	return lex.Src[lex.Position]
}

// peek looks one rune ahead without consuming it.
func (lex *Lexer) peek() rune {
	return lex.peekAt(1)
}

// peekAt looks n runes ahead without consuming, returning 0 past the end.
func (lex *Lexer) peekAt(n int) rune {
	if lex.Position+n >= lex.SrcLength {
		return 0
	}
	return lex.Src[lex.Position+n]
}

// advance moves the lexer forward by one rune, maintaining the row and
// column counters. The column resets to 1 after a newline.
func (lex *Lexer) advance() {
	if lex.Position >= lex.SrcLength {
		return
	}
	if lex.Src[lex.Position] == '\n' {
		lex.Row++
		lex.Column = 1
	} else {
		lex.Column++
	}
	lex.Position++
}

// textFrom returns the source slice scanned since the given position.
func (lex *Lexer) textFrom(start int) string {
	return string(lex.Src[start:lex.Position])
}

// newToken builds a token covering the source from start to the current
// position, stamped with the position recorded at the token's first rune.
func (lex *Lexer) newToken(kind TokenKind, start int, row int, column int) Token {
	return NewToken(kind, lex.textFrom(start), row, column)
}

// skipLineComment consumes a // comment up to (but not including) the
// terminating newline, which the following whitespace token will cover.
func (lex *Lexer) skipLineComment() {
	lex.advance()
	lex.advance()
	for lex.current() != '\n' && lex.current() != 0 {
		lex.advance()
	}
}

// skipBlockComment consumes a /* ... */ comment. A comment left open at
// end of input is an InvalidCommentFormat error at the comment's start.
func (lex *Lexer) skipBlockComment(row int, column int) error {
	lex.advance()
	lex.advance()
	for {
		switch {
		case lex.current() == 0:
			return errs.NewLexical(errs.InvalidCommentFormat, row, column,
				"block comment is never closed")
		case lex.current() == '*' && lex.peek() == '/':
			lex.advance()
			lex.advance()
			return nil
		default:
			lex.advance()
		}
	}
}

// identifierOrPrefixed scans an identifier, the lone underscore token, or
// a prefixed literal (r"...", b'x', b"...", br"...", c"...", cr"...").
// Whether the scanned word is a keyword is decided later, by the token
// stream, against the fixed keyword table.
func (lex *Lexer) identifierOrPrefixed(start int, row int, column int) (Token, error) {
	// A lone underscore is its own token, not an identifier.
	if lex.current() == '_' && !isIdentifierContinue(lex.peek()) {
		lex.advance()
		return lex.newToken(UNDERSCORE, start, row, column), nil
	}

	for isIdentifierContinue(lex.current()) {
		lex.advance()
	}
	word := lex.textFrom(start)

	// String-flavor prefixes glue directly onto the opening delimiter.
	if _, ok := stringPrefixKind(word); ok {
		if lex.current() == '"' || (isRawPrefix(word) && lex.current() == '#') {
			return lex.stringLiteral(start, row, column, word)
		}
	}
	if word == "b" && lex.current() == '\'' {
		return lex.charLiteral(start, row, column, word)
	}

	return lex.newToken(IDENTIFIER_TYPE, start, row, column), nil
}
