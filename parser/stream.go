package parser

import (
	"github.com/nagc-lang/nagc/lexer"
	"github.com/nagc-lang/nagc/token"
)

// TokenStream is the preprocessed token cursor the parser reads from.
//
// It is built from the raw lexer output: whitespace and comments are
// skipped, raw identifiers are classified as keywords or identifiers by
// the fixed keyword table, and numeric literals are normalized into
// integer vs float literal kinds.
//
// The stream also implements the glue operation: on demand, PeekGlue and
// NextGlue fuse short runs of adjacent single-character tokens into the
// longest valid composite operator starting at the cursor. Glue length is
// never speculative; the composite table fully disambiguates.
//
// Position saves are O(1) integer indices, which is what makes packrat
// memoization and backtracking cheap.
type TokenStream struct {
	tokens   []token.Token
	position int
}

// NewTokenStream cooks the raw lexer tokens into a stream.
func NewTokenStream(rawTokens []lexer.Token) *TokenStream {
	tokens := make([]token.Token, 0, len(rawTokens))
	for i := range rawTokens {
		if cooked, ok := convertToken(&rawTokens[i]); ok {
			tokens = append(tokens, cooked)
		}
	}
	return &TokenStream{tokens: tokens}
}

// convertToken turns one raw token into its cooked form. The second
// result is false for trivia (whitespace, comments), which the stream
// drops.
func convertToken(raw *lexer.Token) (token.Token, bool) {
	switch raw.Kind {
	case lexer.WHITESPACE_TYPE, lexer.COMMENT_TYPE:
		return token.Token{}, false

	case lexer.IDENTIFIER_TYPE:
		if keyword, ok := token.LookupKeyword(raw.Text); ok {
			cooked := token.NewWithPosition(token.KEYWORD_KIND, raw.Text, raw.Row, raw.Column)
			cooked.Keyword = keyword
			return cooked, true
		}
		return token.NewWithPosition(token.IDENTIFIER_KIND, raw.Text, raw.Row, raw.Column), true

	case lexer.LITERAL_TYPE:
		cooked := token.NewWithPosition(token.LITERAL_KIND, raw.Text, raw.Row, raw.Column)
		cooked.Literal = cookLiteral(raw.Literal)
		return cooked, true
	}

	// Raw single-character kinds share their spelling with the cooked
	// kind, so the conversion is a direct cast.
	cooked := token.NewWithPosition(token.Kind(raw.Kind), raw.Text, raw.Row, raw.Column)
	return cooked, true
}

// cookLiteral normalizes a raw literal descriptor: the numeric bases
// collapse into Integer, floats keep their exponent flag, and the other
// flavors map one-to-one.
func cookLiteral(raw *lexer.LiteralInfo) *token.Literal {
	cooked := &token.Literal{
		Prefix:      raw.Prefix,
		Symbol:      raw.Symbol,
		Suffix:      raw.Suffix,
		HasExponent: raw.HasExponent,
	}
	switch raw.Kind {
	case lexer.BIN_LITERAL, lexer.OCT_LITERAL, lexer.DEC_LITERAL, lexer.HEX_LITERAL:
		cooked.Kind = token.INTEGER_LITERAL
	case lexer.FLOAT_LITERAL:
		cooked.Kind = token.FLOAT_LITERAL
	case lexer.CHAR_LITERAL:
		cooked.Kind = token.CHAR_LITERAL
	case lexer.BYTE_LITERAL:
		cooked.Kind = token.BYTE_LITERAL
	case lexer.STR_LITERAL:
		cooked.Kind = token.STR_LITERAL
	case lexer.STR_RAW_LITERAL:
		cooked.Kind = token.STR_RAW_LITERAL
	case lexer.BYTE_STR_LITERAL:
		cooked.Kind = token.BYTE_STR_LITERAL
	case lexer.BYTE_STR_RAW_LITERAL:
		cooked.Kind = token.BYTE_STR_RAW_LITERAL
	case lexer.C_STR_LITERAL:
		cooked.Kind = token.C_STR_LITERAL
	case lexer.C_STR_RAW_LITERAL:
		cooked.Kind = token.C_STR_RAW_LITERAL
	default:
		cooked.Kind = token.ERROR_LITERAL
	}
	return cooked
}

// Peek returns the token at the cursor without consuming it.
func (ts *TokenStream) Peek() token.Token {
	return ts.PeekAhead(0)
}

// PeekAhead returns the token n positions past the cursor, or EOF.
func (ts *TokenStream) PeekAhead(n int) token.Token {
	if ts.position+n >= len(ts.tokens) {
		return token.NewEOF()
	}
	return ts.tokens[ts.position+n]
}

// Next returns the token at the cursor and advances by one.
func (ts *TokenStream) Next() token.Token {
	tok := ts.Peek()
	if ts.position < len(ts.tokens) {
		ts.position++
	}
	return tok
}

// TokenPosition returns the cursor as a saveable integer index.
func (ts *TokenStream) TokenPosition() int {
	return ts.position
}

// SetPosition restores a previously saved cursor position.
func (ts *TokenStream) SetPosition(position int) {
	ts.position = position
}

// SourcePosition returns the (row, column) of the token at the cursor.
func (ts *TokenStream) SourcePosition() (int, int) {
	tok := ts.Peek()
	return tok.Row, tok.Column
}

// IsEOF reports whether the cursor has reached the end of the stream.
func (ts *TokenStream) IsEOF() bool {
	return ts.Peek().Kind == token.EOF_KIND
}

// PeekGlue returns the longest composite operator starting at the cursor,
// or the plain token when no glue applies. The cursor does not move.
func (ts *TokenStream) PeekGlue() token.Token {
	glued, _ := ts.glue()
	return glued
}

// NextGlue consumes and returns the longest composite operator starting
// at the cursor, advancing by as many underlying tokens as were fused.
func (ts *TokenStream) NextGlue() token.Token {
	glued, width := ts.glue()
	ts.position += width
	if ts.position > len(ts.tokens) {
		ts.position = len(ts.tokens)
	}
	return glued
}

// glue computes the composite token at the cursor and the number of
// underlying tokens it covers (1 when no fusion applies).
func (ts *TokenStream) glue() (token.Token, int) {
	first := ts.Peek()
	second := ts.PeekAhead(1)
	third := ts.PeekAhead(2)

	fuse := func(kind token.Kind, parts ...token.Token) (token.Token, int) {
		text := ""
		for _, part := range parts {
			text += part.Text
		}
		glued := token.NewWithPosition(kind, text, first.Row, first.Column)
		return glued, len(parts)
	}

	switch first.Kind {
	case token.PLUS_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.PLUS_ASSIGN, first, second)
		}
	case token.MINUS_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.MINUS_ASSIGN, first, second)
		}
		if second.Kind == token.GT_OP {
			return fuse(token.RIGHT_ARROW, first, second)
		}
	case token.STAR_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.STAR_ASSIGN, first, second)
		}
	case token.SLASH_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.SLASH_ASSIGN, first, second)
		}
	case token.PERCENT_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.PERCENT_ASSIGN, first, second)
		}
	case token.CARET_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.CARET_ASSIGN, first, second)
		}
	case token.NOT_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.NE_OP, first, second)
		}
	case token.AND_OP:
		if second.Kind == token.AND_OP {
			return fuse(token.ANDAND_OP, first, second)
		}
		if second.Kind == token.EQUAL_OP {
			return fuse(token.AND_ASSIGN, first, second)
		}
	case token.OR_OP:
		if second.Kind == token.OR_OP {
			return fuse(token.OROR_OP, first, second)
		}
		if second.Kind == token.EQUAL_OP {
			return fuse(token.OR_ASSIGN, first, second)
		}
	case token.EQUAL_OP:
		if second.Kind == token.EQUAL_OP {
			return fuse(token.EQ_OP, first, second)
		}
		if second.Kind == token.GT_OP {
			return fuse(token.FAT_ARROW, first, second)
		}
	case token.GT_OP:
		if second.Kind == token.GT_OP {
			if third.Kind == token.EQUAL_OP {
				return fuse(token.RSHIFT_ASSIGN, first, second, third)
			}
			return fuse(token.RIGHT_SHIFT_OP, first, second)
		}
		if second.Kind == token.EQUAL_OP {
			return fuse(token.GE_OP, first, second)
		}
	case token.LT_OP:
		if second.Kind == token.LT_OP {
			if third.Kind == token.EQUAL_OP {
				return fuse(token.LSHIFT_ASSIGN, first, second, third)
			}
			return fuse(token.LEFT_SHIFT_OP, first, second)
		}
		if second.Kind == token.EQUAL_OP {
			return fuse(token.LE_OP, first, second)
		}
		if second.Kind == token.MINUS_OP {
			return fuse(token.LEFT_ARROW, first, second)
		}
	case token.DOT_OP:
		if second.Kind == token.DOT_OP {
			if third.Kind == token.DOT_OP {
				return fuse(token.DOTDOTDOT_OP, first, second, third)
			}
			if third.Kind == token.EQUAL_OP {
				return fuse(token.DOTDOT_EQ_OP, first, second, third)
			}
			return fuse(token.DOTDOT_OP, first, second)
		}
	case token.COLON_DELIM:
		if second.Kind == token.COLON_DELIM {
			return fuse(token.PATH_SEPARATOR, first, second)
		}
	}

	return first, 1
}
