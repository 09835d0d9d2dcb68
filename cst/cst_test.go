package cst

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagc-lang/nagc/token"
)

func TestNode_FactorHelpers(t *testing.T) {
	fn := token.NewWithPosition(token.KEYWORD_KIND, "fn", 1, 1)
	fn.Keyword = token.KW_FN
	factor := NewFactor(fn)

	assert.True(t, factor.IsLeaf())
	assert.True(t, factor.IsFactorKind(token.KEYWORD_KIND))
	assert.True(t, factor.IsFactorKeyword(token.KW_FN))
	assert.False(t, factor.IsFactorKeyword(token.KW_LET))
	assert.Equal(t, 1, factor.Row)

	ident := NewFactor(token.NewWithPosition(token.IDENTIFIER_KIND, "hoge", 1, 4))
	assert.Equal(t, "hoge", ident.IdentifierText())
	assert.Equal(t, "", factor.IdentifierText())
}

func TestNode_LeavesInterleaveOperator(t *testing.T) {
	// 1 + 2: the operator leaf must appear between its operands so the
	// leaf order equals source order.
	one := NewLiteral(token.NewWithPosition(token.LITERAL_KIND, "1", 1, 1), token.NewLiteral(token.INTEGER_LITERAL, "1"))
	two := NewLiteral(token.NewWithPosition(token.LITERAL_KIND, "2", 1, 5), token.NewLiteral(token.INTEGER_LITERAL, "2"))
	plus := NewOperator(token.NewWithPosition(token.PLUS_OP, "+", 1, 3))
	plus.AddChild(one)
	plus.AddChild(two)

	assert.Equal(t, "1+2", plus.SourceText())

	// Prefix form: one child, operator first.
	minus := NewOperator(token.NewWithPosition(token.MINUS_OP, "-", 1, 1))
	minus.AddChild(NewLiteral(token.NewWithPosition(token.LITERAL_KIND, "5", 1, 2), token.NewLiteral(token.INTEGER_LITERAL, "5")))
	assert.Equal(t, "-5", minus.SourceText())
}

func TestNode_ChildLookups(t *testing.T) {
	parent := NewNode(STATEMENTS,
		NewNode(STATEMENT),
		NewNode(STATEMENT),
		NewNode(EXPRESSION_WITHOUT_BLOCK),
	)

	assert.Len(t, parent.ChildrenOfKind(STATEMENT), 2)
	assert.NotNil(t, parent.FirstChildOfKind(EXPRESSION_WITHOUT_BLOCK))
	assert.Nil(t, parent.FirstChildOfKind(LET_STATEMENT))
}

func TestNode_WriteJSON(t *testing.T) {
	node := NewNode(CRATE, NewFactor(token.NewWithPosition(token.SEMICOLON_DELIM, ";", 1, 1)))
	fileName := filepath.Join(t.TempDir(), "tree.json")

	require.NoError(t, node.WriteJSON(fileName))

	data, err := os.ReadFile(fileName)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Crate", decoded["node_kind"])
}
