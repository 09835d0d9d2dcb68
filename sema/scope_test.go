package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagc-lang/nagc/token"
)

func TestScope_InsertAndLookup(t *testing.T) {
	scope := NewScope()

	scope.InsertVariable("x", token.RARITY_UR, TYPE_INT32, 4)
	record, found := scope.Lookup(SYMBOL_VARIABLE, "x")
	require.True(t, found)

	variable, ok := record.(*VariableRecord)
	require.True(t, ok)
	assert.Equal(t, token.RARITY_UR, variable.Rarity)
	assert.Equal(t, TYPE_INT32, variable.Type)
	assert.Equal(t, uint32(4), variable.Size)
}

func TestScope_SymbolKeyNamespaces(t *testing.T) {
	// A variable and a function may share a name: the SymbolKey pairs
	// (Variable, x) and (Function, x) are distinct.
	scope := NewScope()
	scope.InsertVariable("x", token.RARITY_LET, TYPE_UNRESOLVED, 0)
	assert.True(t, scope.InsertFunction("x", nil))

	assert.True(t, scope.HasSymbol(SYMBOL_VARIABLE, "x"))
	assert.True(t, scope.HasSymbol(SYMBOL_FUNCTION, "x"))
}

func TestScope_FunctionRedefinition(t *testing.T) {
	scope := NewScope()
	returnType := TYPE_INT32

	assert.True(t, scope.InsertFunction("f", &returnType))
	assert.False(t, scope.InsertFunction("f", nil))

	// The first record survives the refused insert.
	record, found := scope.Lookup(SYMBOL_FUNCTION, "f")
	require.True(t, found)
	function := record.(*FunctionRecord)
	require.NotNil(t, function.ReturnType)
	assert.Equal(t, TYPE_INT32, *function.ReturnType)
}

func TestScope_VariableShadowingLastWriteWins(t *testing.T) {
	scope := NewScope()
	scope.InsertVariable("x", token.RARITY_LET, TYPE_INT32, 4)
	scope.InsertVariable("x", token.RARITY_NR, TYPE_FLOAT64, 8)

	record, found := scope.Lookup(SYMBOL_VARIABLE, "x")
	require.True(t, found)
	variable := record.(*VariableRecord)
	assert.Equal(t, token.RARITY_NR, variable.Rarity)
	assert.Equal(t, TYPE_FLOAT64, variable.Type)
}

func TestScope_AncestorLookup(t *testing.T) {
	root := NewScope()
	middle := root.AddChild()
	leaf := middle.AddChild()

	root.InsertVariable("global", token.RARITY_LET, TYPE_UNRESOLVED, 0)
	middle.InsertVariable("local", token.RARITY_LET, TYPE_UNRESOLVED, 0)

	// Lookup walks strictly upward.
	assert.True(t, leaf.IsSymbolInAncestors(SYMBOL_VARIABLE, "global"))
	assert.True(t, leaf.IsSymbolInAncestors(SYMBOL_VARIABLE, "local"))
	assert.True(t, middle.IsSymbolInAncestors(SYMBOL_VARIABLE, "global"))
	assert.False(t, root.IsSymbolInAncestors(SYMBOL_VARIABLE, "local"))
	assert.False(t, leaf.IsSymbolInAncestors(SYMBOL_FUNCTION, "global"))
}

func TestScope_SiblingsAreNotConsulted(t *testing.T) {
	root := NewScope()
	first := root.AddChild()
	second := root.AddChild()

	first.InsertVariable("only_here", token.RARITY_LET, TYPE_UNRESOLVED, 0)
	assert.False(t, second.IsSymbolInAncestors(SYMBOL_VARIABLE, "only_here"))
}

func TestScope_TreeShape(t *testing.T) {
	root := NewScope()
	first := root.AddChild()
	second := root.AddChild()

	// The root has no parent edge; children keep creation order.
	assert.Nil(t, root.Parent)
	require.Len(t, root.Children, 2)
	assert.Same(t, first, root.Children[0])
	assert.Same(t, second, root.Children[1])
	assert.Same(t, root, first.Parent)
}

func TestSymbolTypeFromName(t *testing.T) {
	symbolType, ok := SymbolTypeFromName("i32")
	assert.True(t, ok)
	assert.Equal(t, TYPE_INT32, symbolType)

	symbolType, ok = SymbolTypeFromName("f64")
	assert.True(t, ok)
	assert.Equal(t, TYPE_FLOAT64, symbolType)

	_, ok = SymbolTypeFromName("String")
	assert.False(t, ok)
}
