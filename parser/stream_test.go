package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagc-lang/nagc/lexer"
	"github.com/nagc-lang/nagc/token"
)

// stream lexes the source and cooks it into a TokenStream.
func stream(t *testing.T, src string) *TokenStream {
	t.Helper()
	rawTokens, err := lexer.NewLexer(src).Tokenize()
	require.NoError(t, err)
	return NewTokenStream(rawTokens)
}

func TestTokenStream_SkipsTrivia(t *testing.T) {
	ts := stream(t, "1 // comment\n + /* block */ 2")

	assert.Equal(t, token.LITERAL_KIND, ts.Next().Kind)
	assert.Equal(t, token.PLUS_OP, ts.Next().Kind)
	assert.Equal(t, token.LITERAL_KIND, ts.Next().Kind)
	assert.True(t, ts.IsEOF())
}

func TestTokenStream_ClassifiesKeywords(t *testing.T) {
	ts := stream(t, "let ur sr nr hoge fn")

	for _, expected := range []token.Keyword{token.KW_LET, token.KW_UR, token.KW_SR, token.KW_NR} {
		tok := ts.Next()
		assert.Equal(t, token.KEYWORD_KIND, tok.Kind)
		assert.Equal(t, expected, tok.Keyword)
	}

	ident := ts.Next()
	assert.Equal(t, token.IDENTIFIER_KIND, ident.Kind)
	assert.Equal(t, "hoge", ident.Text)

	fn := ts.Next()
	assert.True(t, fn.IsKeyword(token.KW_FN))
}

func TestTokenStream_NormalizesLiterals(t *testing.T) {
	ts := stream(t, "0b101 0o17 42 0xFF 1.5 1.23e4")

	for i := 0; i < 4; i++ {
		tok := ts.Next()
		require.NotNil(t, tok.Literal)
		assert.Equal(t, token.INTEGER_LITERAL, tok.Literal.Kind)
	}

	float := ts.Next()
	assert.Equal(t, token.FLOAT_LITERAL, float.Literal.Kind)
	assert.False(t, float.Literal.HasExponent)

	exponent := ts.Next()
	assert.Equal(t, token.FLOAT_LITERAL, exponent.Literal.Kind)
	assert.True(t, exponent.Literal.HasExponent)
}

func TestTokenStream_GlueTable(t *testing.T) {
	cases := map[string]token.Kind{
		"&&":  token.ANDAND_OP,
		"||":  token.OROR_OP,
		"<<":  token.LEFT_SHIFT_OP,
		">>":  token.RIGHT_SHIFT_OP,
		"<<=": token.LSHIFT_ASSIGN,
		">>=": token.RSHIFT_ASSIGN,
		"==":  token.EQ_OP,
		"!=":  token.NE_OP,
		">=":  token.GE_OP,
		"<=":  token.LE_OP,
		"+=":  token.PLUS_ASSIGN,
		"-=":  token.MINUS_ASSIGN,
		"*=":  token.STAR_ASSIGN,
		"/=":  token.SLASH_ASSIGN,
		"%=":  token.PERCENT_ASSIGN,
		"^=":  token.CARET_ASSIGN,
		"&=":  token.AND_ASSIGN,
		"|=":  token.OR_ASSIGN,
		"..":  token.DOTDOT_OP,
		"...": token.DOTDOTDOT_OP,
		"..=": token.DOTDOT_EQ_OP,
		"::":  token.PATH_SEPARATOR,
		"->":  token.RIGHT_ARROW,
		"=>":  token.FAT_ARROW,
		"<-":  token.LEFT_ARROW,
	}

	for src, expected := range cases {
		ts := stream(t, src)
		glued := ts.PeekGlue()
		assert.Equal(t, expected, glued.Kind, src)
		assert.Equal(t, src, glued.Text, src)

		// NextGlue consumes the whole composite.
		ts.NextGlue()
		assert.True(t, ts.IsEOF(), src)
	}
}

func TestTokenStream_GlueDoesNotApply(t *testing.T) {
	// A plain token comes back unchanged and advancement is one token.
	ts := stream(t, "+ 1")
	glued := ts.NextGlue()
	assert.Equal(t, token.PLUS_OP, glued.Kind)
	assert.Equal(t, token.LITERAL_KIND, ts.Peek().Kind)
}

func TestTokenStream_GlueKeepsPosition(t *testing.T) {
	ts := stream(t, "a <<= b")
	ts.Next() // a

	glued := ts.PeekGlue()
	assert.Equal(t, token.LSHIFT_ASSIGN, glued.Kind)
	assert.Equal(t, 1, glued.Row)
	assert.Equal(t, 3, glued.Column)
}

func TestTokenStream_CursorSaveRestore(t *testing.T) {
	ts := stream(t, "a b c")

	saved := ts.TokenPosition()
	assert.Equal(t, "a", ts.Next().Text)
	assert.Equal(t, "b", ts.Next().Text)

	ts.SetPosition(saved)
	assert.Equal(t, "a", ts.Peek().Text)
	assert.Equal(t, "c", ts.PeekAhead(2).Text)

	row, column := ts.SourcePosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, column)
}
