// Package sema implements the semantic analyzer: it walks the CST,
// constructs the tree of lexical scopes with their symbol tables, checks
// declaration rules, and lowers the CST into the AST.
package sema

import "github.com/nagc-lang/nagc/token"

// SymbolPattern distinguishes the two symbol namespaces of a scope.
type SymbolPattern string

const (
	SYMBOL_VARIABLE SymbolPattern = "Variable"
	SYMBOL_FUNCTION SymbolPattern = "Function"
)

// SymbolType is the closed set of primitive types a symbol can carry.
// TYPE_UNRESOLVED is the placeholder used until type inference runs.
type SymbolType string

const (
	TYPE_UNRESOLVED SymbolType = "Unresolved"

	TYPE_INT8    SymbolType = "Int8"
	TYPE_INT16   SymbolType = "Int16"
	TYPE_INT32   SymbolType = "Int32"
	TYPE_INT64   SymbolType = "Int64"
	TYPE_INT128  SymbolType = "Int128"
	TYPE_UINT8   SymbolType = "UInt8"
	TYPE_UINT16  SymbolType = "UInt16"
	TYPE_UINT32  SymbolType = "UInt32"
	TYPE_UINT64  SymbolType = "UInt64"
	TYPE_UINT128 SymbolType = "UInt128"
	TYPE_FLOAT32 SymbolType = "Float32"
	TYPE_FLOAT64 SymbolType = "Float64"

	// Reserved vector types, not yet reachable from source.
	TYPE_VEC2 SymbolType = "Vec2"
	TYPE_VEC3 SymbolType = "Vec3"
	TYPE_VEC4 SymbolType = "Vec4"
)

// symbolTypeNames maps source-level type names onto SymbolType.
var symbolTypeNames = map[string]SymbolType{
	"i8":   TYPE_INT8,
	"i16":  TYPE_INT16,
	"i32":  TYPE_INT32,
	"i64":  TYPE_INT64,
	"i128": TYPE_INT128,
	"u8":   TYPE_UINT8,
	"u16":  TYPE_UINT16,
	"u32":  TYPE_UINT32,
	"u64":  TYPE_UINT64,
	"u128": TYPE_UINT128,
	"f32":  TYPE_FLOAT32,
	"f64":  TYPE_FLOAT64,
}

// SymbolTypeFromName resolves a source-level type name. The second
// result is false for names outside the primitive set.
func SymbolTypeFromName(name string) (SymbolType, bool) {
	symbolType, ok := symbolTypeNames[name]
	return symbolType, ok
}

// SymbolKey addresses one record within a scope. The pair is unique
// within a single scope; across ancestors, names may shadow.
type SymbolKey struct {
	Pattern SymbolPattern
	Name    string
}

// SymbolRecord is either a VariableRecord or a FunctionRecord.
type SymbolRecord interface {
	symbolRecord()
}

// VariableRecord describes a declared variable. Size stays 0 until type
// inference assigns the real layout.
type VariableRecord struct {
	Rarity token.Rarity
	Type   SymbolType
	Size   uint32
}

func (*VariableRecord) symbolRecord() {}

// FunctionRecord describes a declared function.
type FunctionRecord struct {
	ReturnType *SymbolType // nil when the function returns nothing
}

func (*FunctionRecord) symbolRecord() {}

// Scope is one node of the symbol scope tree. The scope owns its
// children; the parent edge is a plain non-owning back-reference, absent
// on the root, and valid for as long as the tree itself lives.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Symbols  map[SymbolKey]SymbolRecord
}

// NewScope creates a detached scope. Use AddChild to grow the tree.
func NewScope() *Scope {
	return &Scope{
		Symbols: make(map[SymbolKey]SymbolRecord),
	}
}

// AddChild creates a fresh scope owned by this one and returns it.
// Children are kept in creation order for later stages to inspect.
func (s *Scope) AddChild() *Scope {
	child := NewScope()
	child.Parent = s
	s.Children = append(s.Children, child)
	return child
}

// InsertFunction records (Function, name) in this scope. It reports
// false when a record with the same key already exists, which the
// analyzer turns into a RedefinitionFunction error.
func (s *Scope) InsertFunction(name string, returnType *SymbolType) bool {
	key := SymbolKey{Pattern: SYMBOL_FUNCTION, Name: name}
	if _, exists := s.Symbols[key]; exists {
		return false
	}
	s.Symbols[key] = &FunctionRecord{ReturnType: returnType}
	return true
}

// InsertVariable records (Variable, name) in this scope. Shadowing
// within one scope is permitted for every rarity in this release: the
// last write wins.
func (s *Scope) InsertVariable(name string, rarity token.Rarity, symbolType SymbolType, size uint32) {
	key := SymbolKey{Pattern: SYMBOL_VARIABLE, Name: name}
	s.Symbols[key] = &VariableRecord{
		Rarity: rarity,
		Type:   symbolType,
		Size:   size,
	}
}

// HasSymbol reports whether this scope itself holds the key.
func (s *Scope) HasSymbol(pattern SymbolPattern, name string) bool {
	_, found := s.Symbols[SymbolKey{Pattern: pattern, Name: name}]
	return found
}

// Lookup returns the record for the key in this scope only.
func (s *Scope) Lookup(pattern SymbolPattern, name string) (SymbolRecord, bool) {
	record, found := s.Symbols[SymbolKey{Pattern: pattern, Name: name}]
	return record, found
}

// IsSymbolInAncestors reports whether this scope or any ancestor holds
// the key. Iteration is strictly upward along parent edges; sibling
// scopes are never consulted.
func (s *Scope) IsSymbolInAncestors(pattern SymbolPattern, name string) bool {
	for current := s; current != nil; current = current.Parent {
		if current.HasSymbol(pattern, name) {
			return true
		}
	}
	return false
}
