package lexer

import (
	"strings"

	"github.com/nagc-lang/nagc/errs"
)

// Numeric literal scanning.
//
// Grammar (informal):
//
//	BinLit        ::= "0b" (BinDigit | "_")* BinDigit (BinDigit | "_")*
//	OctLit        ::= "0o" (OctDigit | "_")* OctDigit (OctDigit | "_")*
//	DecLit        ::= DecDigit (DecDigit | "_")*
//	HexLit        ::= "0x" (HexDigit | "_")* HexDigit (HexDigit | "_")*
//	FloatLit      ::= DecLit "."
//	                | DecLit "." DecLit SuffixNoE?
//	                | DecLit ("." DecLit)? FloatExponent Suffix?
//	FloatExponent ::= [eE] [+-]? DecLit
//
// After a binary or octal literal the lexer checks that no decimal digit
// invalid for the chosen base follows; if one does, the whole literal is
// flagged illegal. A trailing dot makes a float only when the character
// after the dot is neither a digit (fraction), a second dot (range
// operator), nor an identifier start (method call on the number).

// number scans a numeric literal starting at the current decimal digit.
func (lex *Lexer) number(start int, row int, column int) (Token, error) {
	kind := DEC_LITERAL

	// Base prefix detection on a leading zero.
	if lex.current() == '0' {
		switch lex.peek() {
		case 'b':
			kind = BIN_LITERAL
		case 'o':
			kind = OCT_LITERAL
		case 'x':
			kind = HEX_LITERAL
		}
		if kind != DEC_LITERAL {
			lex.advance()
			lex.advance()
		}
	}

	var hasDigits bool
	switch kind {
	case BIN_LITERAL:
		hasDigits = lex.eatDigits(isBinDigit)
	case OCT_LITERAL:
		hasDigits = lex.eatDigits(isOctDigit)
	case HEX_LITERAL:
		hasDigits = lex.eatDigits(isHexDigit)
	default:
		hasDigits = lex.eatDigits(isDecDigit)
	}
	if !hasDigits {
		return Token{}, errs.NewLexical(errs.InvalidNumberFormat, row, column,
			"number %q has no digits", lex.textFrom(start))
	}

	// A decimal digit that is invalid for the chosen base poisons the
	// whole literal: 0b012 fails at the 2.
	if (kind == BIN_LITERAL || kind == OCT_LITERAL) && isDecDigit(lex.current()) {
		return Token{}, errs.NewLexical(errs.InvalidNumberFormat, lex.Row, lex.Column,
			"invalid digit %q for base of %q", string(lex.current()), lex.textFrom(start))
	}

	hasExponent := false
	isFloat := false

	if kind == DEC_LITERAL {
		if lex.current() == '.' {
			next := lex.peekAt(1)
			switch {
			case isDecDigit(next):
				lex.advance()
				lex.eatDigits(isDecDigit)
				isFloat = true
			case next == '.' || isIdentifierStart(next):
				// 1..2 is a range, 12.abs() a method call: the dot
				// does not belong to the number.
			default:
				// Trailing-dot float such as "0.".
				lex.advance()
				isFloat = true
			}
		}

		if lex.current() == 'e' || lex.current() == 'E' {
			if lex.exponentFollows() {
				lex.advance()
				if lex.current() == '+' || lex.current() == '-' {
					lex.advance()
				}
				lex.eatDigits(isDecDigit)
				isFloat = true
				hasExponent = true
			} else {
				// A suffix beginning with e/E would be ambiguous with
				// an exponent and is disallowed here.
				return Token{}, errs.NewLexical(errs.InvalidNumberFormat, lex.Row, lex.Column,
					"suffix of %q must not begin with an exponent marker", lex.textFrom(start))
			}
		}
	}

	symbol := lex.textFrom(start)

	// Type suffix: identifier-shaped, glued directly onto the digits.
	// Underscores consumed as digit separators are handed back to the
	// suffix when a letter follows, so 12E+34_f64 carries suffix "_f64".
	suffix := ""
	if isIdentifierStart(lex.current()) {
		suffixStart := lex.Position
		for isIdentifierContinue(lex.current()) {
			lex.advance()
		}
		suffix = lex.textFrom(suffixStart)

		for strings.HasSuffix(symbol, "_") {
			symbol = symbol[:len(symbol)-1]
			suffix = "_" + suffix
		}
	}

	literalKind := kind
	if isFloat {
		literalKind = FLOAT_LITERAL
	}
	tok := lex.newToken(LITERAL_TYPE, start, row, column)
	tok.Literal = &LiteralInfo{
		Kind:        literalKind,
		Symbol:      symbol,
		Suffix:      suffix,
		HasExponent: hasExponent,
	}
	return tok, nil
}

// eatDigits consumes a run of digits of the given class interleaved with
// underscores and reports whether at least one real digit was seen.
func (lex *Lexer) eatDigits(isDigit func(rune) bool) bool {
	hasDigits := false
	for {
		c := lex.current()
		switch {
		case c == '_':
			lex.advance()
		case isDigit(c):
			lex.advance()
			hasDigits = true
		default:
			return hasDigits
		}
	}
}

// exponentFollows reports whether the e/E at the current position starts a
// well-formed exponent: an optional sign followed by a decimal digit.
func (lex *Lexer) exponentFollows() bool {
	next := lex.peekAt(1)
	if next == '+' || next == '-' {
		return isDecDigit(lex.peekAt(2))
	}
	return isDecDigit(next)
}
