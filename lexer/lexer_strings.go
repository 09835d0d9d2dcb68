package lexer

import (
	"github.com/nagc-lang/nagc/errs"
)

// Character, string, byte-string and C-string literal scanning.
//
// Grammar (informal):
//
//	CharLit   ::= "'" ( ~['\\\n\r\t] | Escape ) "'"
//	Escape    ::= \' | \" | \n | \r | \t | \\ | \0
//	          |   \x HexDigit HexDigit
//	          |   \u{ (HexDigit "_"*){1,6} }
//	StringLit ::= '"' ( ~["\\] | Escape | StringContinue )* '"'
//	RawLit    ::= prefix "#"* '"' ... '"' "#"*   (matched hash counts)
//
// StringContinue is a backslash directly before a newline; both are
// consumed and the literal continues on the next line.

// charLiteral scans a character literal ('x') or, with prefix "b", a byte
// literal (b'x'). start covers the prefix when present.
func (lex *Lexer) charLiteral(start int, row int, column int, prefix string) (Token, error) {
	lex.advance() // opening quote
	bodyStart := lex.Position

	c := lex.current()
	switch {
	case c == '\\':
		if err := lex.scanEscape(); err != nil {
			return Token{}, err
		}
	case c == '\'' || c == '\n' || c == '\r' || c == '\t' || c == 0:
		return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
			"malformed character literal")
	default:
		lex.advance()
	}

	if lex.current() != '\'' {
		return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
			"character literal is never closed")
	}
	body := lex.textFrom(bodyStart)
	lex.advance() // closing quote

	kind := CHAR_LITERAL
	if prefix == "b" {
		kind = BYTE_LITERAL
	}
	tok := lex.newToken(LITERAL_TYPE, start, row, column)
	tok.Literal = &LiteralInfo{
		Kind:   kind,
		Prefix: prefix,
		Symbol: body,
	}
	return tok, nil
}

// stringLiteral scans a string literal of any flavor. prefix selects the
// flavor ("" plain, "r", "b", "br", "c", "cr"); raw flavors admit matched
// '#' runs around the quotes and take their content verbatim.
func (lex *Lexer) stringLiteral(start int, row int, column int, prefix string) (Token, error) {
	kind := STR_LITERAL
	if prefix != "" {
		flavor, ok := stringPrefixKind(prefix)
		if !ok {
			return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
				"unknown string prefix %q", prefix)
		}
		kind = flavor
	}

	if isRawPrefix(prefix) {
		return lex.rawStringBody(start, row, column, prefix, kind)
	}

	lex.advance() // opening quote
	bodyStart := lex.Position
	for {
		c := lex.current()
		switch {
		case c == 0:
			return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
				"string literal is never closed")
		case c == '"':
			body := lex.textFrom(bodyStart)
			lex.advance()
			tok := lex.newToken(LITERAL_TYPE, start, row, column)
			tok.Literal = &LiteralInfo{
				Kind:   kind,
				Prefix: prefix,
				Symbol: body,
			}
			return tok, nil
		case c == '\\' && lex.peek() == '\n':
			// StringContinue: the literal resumes on the next line.
			lex.advance()
			lex.advance()
		case c == '\\':
			if err := lex.scanEscape(); err != nil {
				return Token{}, err
			}
		default:
			lex.advance()
		}
	}
}

// rawStringBody scans the body of a raw string flavor: an optional run of
// '#' before the opening quote that must be matched, in full, directly
// after a closing quote.
func (lex *Lexer) rawStringBody(start int, row int, column int, prefix string, kind LiteralKind) (Token, error) {
	hashes := 0
	for lex.current() == '#' {
		hashes++
		lex.advance()
	}
	if lex.current() != '"' {
		return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
			"raw string is missing its opening quote")
	}
	lex.advance()
	bodyStart := lex.Position

	for {
		if lex.current() == 0 {
			return Token{}, errs.NewLexical(errs.IllegalCharacter, row, column,
				"raw string literal is never closed")
		}
		if lex.current() != '"' {
			lex.advance()
			continue
		}

		bodyEnd := lex.Position
		lex.advance()
		matched := 0
		for matched < hashes && lex.current() == '#' {
			matched++
			lex.advance()
		}
		if matched == hashes {
			tok := lex.newToken(LITERAL_TYPE, start, row, column)
			tok.Literal = &LiteralInfo{
				Kind:   kind,
				Prefix: prefix,
				Symbol: string(lex.Src[bodyStart:bodyEnd]),
			}
			return tok, nil
		}
		// A quote followed by too few hashes is ordinary content.
	}
}

// scanEscape consumes one escape sequence starting at the backslash.
func (lex *Lexer) scanEscape() error {
	row, column := lex.Row, lex.Column
	lex.advance() // backslash

	switch lex.current() {
	case '\'', '"', 'n', 'r', 't', '\\', '0':
		lex.advance()
		return nil

	case 'x':
		lex.advance()
		for i := 0; i < 2; i++ {
			if !isHexDigit(lex.current()) {
				return errs.NewLexical(errs.InvalidEscapeSequence, row, column,
					"\\x escape needs two hex digits")
			}
			lex.advance()
		}
		return nil

	case 'u':
		lex.advance()
		if lex.current() != '{' {
			return errs.NewLexical(errs.InvalidEscapeSequence, row, column,
				"\\u escape needs a braced hex code")
		}
		lex.advance()
		digits := 0
		for isHexDigit(lex.current()) {
			digits++
			lex.advance()
			for lex.current() == '_' {
				lex.advance()
			}
		}
		if digits < 1 || digits > 6 {
			return errs.NewLexical(errs.InvalidEscapeSequence, row, column,
				"\\u escape needs 1 to 6 hex digits")
		}
		if lex.current() != '}' {
			return errs.NewLexical(errs.InvalidEscapeSequence, row, column,
				"\\u escape is missing its closing brace")
		}
		lex.advance()
		return nil
	}

	return errs.NewLexical(errs.InvalidEscapeSequence, row, column,
		"unknown escape sequence \\%s", string(lex.current()))
}
