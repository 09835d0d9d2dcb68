package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	keyword, ok := LookupKeyword("fn")
	assert.True(t, ok)
	assert.Equal(t, KW_FN, keyword)

	keyword, ok = LookupKeyword("ur")
	assert.True(t, ok)
	assert.Equal(t, KW_UR, keyword)

	_, ok = LookupKeyword("hoge")
	assert.False(t, ok)

	// The table is total over its own spellings.
	for spelling, keyword := range KEYWORDS_MAP {
		assert.Equal(t, string(keyword), spelling)
	}
}

func TestRarityOf(t *testing.T) {
	cases := map[Keyword]Rarity{
		KW_LET: RARITY_LET,
		KW_UR:  RARITY_UR,
		KW_SR:  RARITY_SR,
		KW_NR:  RARITY_NR,
	}
	for keyword, expected := range cases {
		rarity, ok := RarityOf(keyword)
		assert.True(t, ok)
		assert.Equal(t, expected, rarity)
		assert.True(t, IsRarity(keyword))
	}

	_, ok := RarityOf(KW_FN)
	assert.False(t, ok)
	assert.False(t, IsRarity(KW_MUT))
}

func TestBinaryOperatorOf(t *testing.T) {
	cases := map[Kind]BinaryOperator{
		PLUS_OP:        OPERATOR_ADD,
		MINUS_OP:       OPERATOR_SUB,
		STAR_OP:        OPERATOR_MUL,
		SLASH_OP:       OPERATOR_DIV,
		PERCENT_OP:     OPERATOR_MOD,
		CARET_OP:       OPERATOR_XOR,
		LEFT_SHIFT_OP:  OPERATOR_LEFT_SHIFT,
		RIGHT_SHIFT_OP: OPERATOR_RIGHT_SHIFT,
		EQUAL_OP:       OPERATOR_EQUAL,
		ANDAND_OP:      OPERATOR_LOGICAL_AND,
		PLUS_ASSIGN:    OPERATOR_ADD_ASSIGN,
	}
	for kind, expected := range cases {
		operator, ok := BinaryOperatorOf(kind)
		assert.True(t, ok, string(kind))
		assert.Equal(t, expected, operator)
	}

	_, ok := BinaryOperatorOf(COMMA_DELIM)
	assert.False(t, ok)
}

func TestTokenPredicates(t *testing.T) {
	plus := NewWithPosition(PLUS_OP, "+", 1, 3)
	assert.True(t, plus.IsOperator())
	assert.False(t, plus.IsEOF())
	assert.Equal(t, "+:+", plus.String())

	eof := NewEOF()
	assert.True(t, eof.IsEOF())
	assert.Equal(t, "EOF", eof.String())

	fn := New(KEYWORD_KIND, "fn")
	fn.Keyword = KW_FN
	assert.True(t, fn.IsKeyword(KW_FN))
	assert.False(t, fn.IsKeyword(KW_LET))
	assert.False(t, fn.IsOperator())
}
