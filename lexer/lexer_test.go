package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagc-lang/nagc/errs"
)

// firstToken lexes the source and returns its first token, failing the
// test on a lexical error.
func firstToken(t *testing.T, src string) Token {
	t.Helper()
	tokens, err := NewLexer(src).Tokenize()
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	return tokens[0]
}

// firstLiteral lexes the source and returns the literal descriptor of
// its first token.
func firstLiteral(t *testing.T, src string) *LiteralInfo {
	t.Helper()
	tok := firstToken(t, src)
	require.Equal(t, LITERAL_TYPE, tok.Kind)
	require.NotNil(t, tok.Literal)
	return tok.Literal
}

func TestLexer_Identifiers(t *testing.T) {
	for _, src := range []string{"hogeFuga", "_hoge", "hoge123", "__hoge__", "_____"} {
		tok := firstToken(t, src)
		assert.Equal(t, IDENTIFIER_TYPE, tok.Kind, src)
		assert.Equal(t, src, tok.Text, src)
	}

	// Unicode identifiers are accepted.
	tok := firstToken(t, "こんにちは")
	assert.Equal(t, IDENTIFIER_TYPE, tok.Kind)

	// A lone underscore is its own token, not an identifier.
	tok = firstToken(t, "_")
	assert.Equal(t, UNDERSCORE, tok.Kind)
}

func TestLexer_BinLiteral(t *testing.T) {
	assert.Equal(t, BIN_LITERAL, firstLiteral(t, "0b01011").Kind)
	assert.Equal(t, BIN_LITERAL, firstLiteral(t, "0b_1_0_").Kind)

	_, err := NewLexer("0b").Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidNumberFormat))

	_, err = NewLexer("0b____").Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidNumberFormat))
}

func TestLexer_BadDigitForBase(t *testing.T) {
	// A decimal digit invalid for the chosen base poisons the literal;
	// the error points at the offending digit.
	_, err := NewLexer("0b012").Tokenize()
	require.Error(t, err)
	lexErr, ok := err.(*errs.LexicalError)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidNumberFormat, lexErr.Kind)
	assert.Equal(t, 1, lexErr.Row)
	assert.Equal(t, 5, lexErr.Column)

	_, err = NewLexer("0o012345678").Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidNumberFormat))
}

func TestLexer_OctHexLiterals(t *testing.T) {
	assert.Equal(t, OCT_LITERAL, firstLiteral(t, "0o01234567").Kind)
	assert.Equal(t, OCT_LITERAL, firstLiteral(t, "0o_0_7_").Kind)
	assert.Equal(t, HEX_LITERAL, firstLiteral(t, "0x123abcDEF").Kind)
	assert.Equal(t, HEX_LITERAL, firstLiteral(t, "0xFf00").Kind)
	assert.Equal(t, HEX_LITERAL, firstLiteral(t, "0x_0_F_").Kind)

	_, err := NewLexer("0x").Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidNumberFormat))
}

func TestLexer_DecLiteral(t *testing.T) {
	assert.Equal(t, DEC_LITERAL, firstLiteral(t, "1234567890").Kind)
	assert.Equal(t, DEC_LITERAL, firstLiteral(t, "0_9_").Kind)
	assert.Equal(t, DEC_LITERAL, firstLiteral(t, "0").Kind)

	// A type suffix rides along on the same token.
	lit := firstLiteral(t, "100u64")
	assert.Equal(t, DEC_LITERAL, lit.Kind)
	assert.Equal(t, "100", lit.Symbol)
	assert.Equal(t, "u64", lit.Suffix)
}

func TestLexer_FloatLiteral(t *testing.T) {
	lit := firstLiteral(t, "123.456")
	assert.Equal(t, FLOAT_LITERAL, lit.Kind)
	assert.False(t, lit.HasExponent)

	assert.Equal(t, FLOAT_LITERAL, firstLiteral(t, "0.1").Kind)

	// A trailing dot still makes a float.
	lit = firstLiteral(t, "0.")
	assert.Equal(t, FLOAT_LITERAL, lit.Kind)
	assert.Equal(t, "0.", lit.Symbol)
}

func TestLexer_FloatWithExponent(t *testing.T) {
	lit := firstLiteral(t, "1.23e45")
	assert.Equal(t, FLOAT_LITERAL, lit.Kind)
	assert.True(t, lit.HasExponent)
	assert.Equal(t, "1.23e45", lit.Symbol)

	lit = firstLiteral(t, "12E+34_f64")
	assert.Equal(t, FLOAT_LITERAL, lit.Kind)
	assert.True(t, lit.HasExponent)
	assert.Equal(t, "12E+34", lit.Symbol)
	assert.Equal(t, "_f64", lit.Suffix)
}

func TestLexer_SuffixMustNotStartWithExponentMarker(t *testing.T) {
	_, err := NewLexer("12eab").Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidNumberFormat))
}

func TestLexer_DotAfterNumberStaysSeparate(t *testing.T) {
	// 1..2 is a range: the dots are not part of the number.
	tokens, err := NewLexer("1..2").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, DEC_LITERAL, tokens[0].Literal.Kind)
	assert.Equal(t, DOT_OP, tokens[1].Kind)
	assert.Equal(t, DOT_OP, tokens[2].Kind)
	assert.Equal(t, DEC_LITERAL, tokens[3].Literal.Kind)

	// 12.abs is a method call on the number.
	tokens, err = NewLexer("12.abs").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, LITERAL_TYPE, tokens[0].Kind)
	assert.Equal(t, DOT_OP, tokens[1].Kind)
	assert.Equal(t, IDENTIFIER_TYPE, tokens[2].Kind)
}

func TestLexer_CharLiteral(t *testing.T) {
	lit := firstLiteral(t, "'a'")
	assert.Equal(t, CHAR_LITERAL, lit.Kind)
	assert.Equal(t, "a", lit.Symbol)

	assert.Equal(t, CHAR_LITERAL, firstLiteral(t, `'\n'`).Kind)
	assert.Equal(t, CHAR_LITERAL, firstLiteral(t, `'\''`).Kind)
	assert.Equal(t, CHAR_LITERAL, firstLiteral(t, `'\x41'`).Kind)
	assert.Equal(t, CHAR_LITERAL, firstLiteral(t, `'\u{1F600}'`).Kind)

	lit = firstLiteral(t, `b'x'`)
	assert.Equal(t, BYTE_LITERAL, lit.Kind)
	assert.Equal(t, "b", lit.Prefix)
}

func TestLexer_InvalidEscapes(t *testing.T) {
	_, err := NewLexer(`'\q'`).Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidEscapeSequence))

	_, err = NewLexer(`'\x4'`).Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidEscapeSequence))

	_, err = NewLexer(`'\u{1234567}'`).Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidEscapeSequence))

	_, err = NewLexer(`'\u{12_34}'`).Tokenize()
	assert.NoError(t, err)
}

func TestLexer_StringLiterals(t *testing.T) {
	lit := firstLiteral(t, `"hello"`)
	assert.Equal(t, STR_LITERAL, lit.Kind)
	assert.Equal(t, "hello", lit.Symbol)

	assert.Equal(t, STR_LITERAL, firstLiteral(t, `"with \"escape\""`).Kind)

	lit = firstLiteral(t, `r#"raw "quoted" body"#`)
	assert.Equal(t, STR_RAW_LITERAL, lit.Kind)
	assert.Equal(t, "r", lit.Prefix)
	assert.Equal(t, `raw "quoted" body`, lit.Symbol)

	assert.Equal(t, BYTE_STR_LITERAL, firstLiteral(t, `b"bytes"`).Kind)
	assert.Equal(t, BYTE_STR_RAW_LITERAL, firstLiteral(t, `br"raw bytes"`).Kind)
	assert.Equal(t, C_STR_LITERAL, firstLiteral(t, `c"c string"`).Kind)
	assert.Equal(t, C_STR_RAW_LITERAL, firstLiteral(t, `cr"raw c"`).Kind)
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := NewLexer(`"never closed`).Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.IllegalCharacter))

	_, err = NewLexer(`r#"missing hashes"`).Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.IllegalCharacter))
}

func TestLexer_Comments(t *testing.T) {
	tokens, err := NewLexer("1 // a comment\n2").Tokenize()
	require.NoError(t, err)

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		LITERAL_TYPE, WHITESPACE_TYPE, COMMENT_TYPE, WHITESPACE_TYPE, LITERAL_TYPE,
	}, kinds)

	tokens, err = NewLexer("1 /* block\ncomment */ 2").Tokenize()
	require.NoError(t, err)
	assert.Equal(t, COMMENT_TYPE, tokens[2].Kind)

	_, err = NewLexer("/* never closed").Tokenize()
	assert.True(t, errs.IsLexicalKind(err, errs.InvalidCommentFormat))
}

func TestLexer_Positions(t *testing.T) {
	tokens, err := NewLexer("ur x =\n  42;").Tokenize()
	require.NoError(t, err)

	// ur(1,1) ws x(1,4) ws =(1,6) ws(newline) 42(2,3) ;(2,5)
	assert.Equal(t, 1, tokens[0].Row)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, "x", tokens[2].Text)
	assert.Equal(t, 1, tokens[2].Row)
	assert.Equal(t, 4, tokens[2].Column)

	var literal Token
	for _, tok := range tokens {
		if tok.Kind == LITERAL_TYPE {
			literal = tok
		}
	}
	assert.Equal(t, 2, literal.Row)
	assert.Equal(t, 3, literal.Column)
}

func TestLexer_Totality(t *testing.T) {
	// Every byte of a successfully-lexed input belongs to exactly one
	// emitted token.
	src := "fn add(a: i32, b: i32) -> i32 { // sum\n    a + b\n}"
	tokens, err := NewLexer(src).Tokenize()
	require.NoError(t, err)

	rebuilt := ""
	for _, tok := range tokens {
		rebuilt += tok.Text
	}
	assert.Equal(t, src, rebuilt)
}

func TestLexer_SingleCharTokens(t *testing.T) {
	src := "+-*/%^!&|><@.,:;#$?~()[]{}"
	tokens, err := NewLexer(src).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, len(src))
	for i, tok := range tokens {
		assert.Equal(t, string(src[i]), tok.Text)
	}
}
