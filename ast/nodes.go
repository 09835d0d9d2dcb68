// Package ast defines the Abstract Syntax Tree produced by the semantic
// analyzer. Unlike the lossless CST, AST nodes carry only semantic
// content: punctuation children are dropped during lowering, keyword
// factors collapse into flags and enums, and identifier factors collapse
// into plain strings.
//
// Every AST sub-tree corresponds to exactly one CST sub-tree, but not
// vice versa: punctuation-only CST children have no AST counterpart.
package ast

import (
	"github.com/nagc-lang/nagc/token"
)

// NodeKind identifies the semantic form of a node.
type NodeKind string

const (
	CRATE                   NodeKind = "Crate"
	FACTOR                  NodeKind = "Factor"
	LITERAL                 NodeKind = "Literal"
	BINARY_OPERATOR         NodeKind = "BinaryOperator"
	UNARY_OPERATOR          NodeKind = "UnaryOperator"
	INNER_ATTRIBUTE         NodeKind = "InnerAttribute"
	OUTER_ATTRIBUTE         NodeKind = "OuterAttribute"
	ATTRIBUTE               NodeKind = "Attribute"
	VISIBILITY              NodeKind = "Visibility"
	FUNCTION                NodeKind = "Function"
	FUNCTION_QUALIFIERS     NodeKind = "FunctionQualifiers"
	FUNCTION_PARAM          NodeKind = "FunctionParam"
	SELF_PARAM              NodeKind = "SelfParam"
	TYPE_PATH               NodeKind = "TypePath"
	REFERENCE_TYPE          NodeKind = "ReferenceType"
	PATH_EXPRESSION         NodeKind = "PathExpression"
	CALL_EXPRESSION         NodeKind = "CallExpression"
	METHOD_CALL_EXPRESSION  NodeKind = "MethodCallExpression"
	STRUCT_EXPRESSION       NodeKind = "StructExpression"
	RETURN_EXPRESSION       NodeKind = "ReturnExpression"
	IF_EXPRESSION           NodeKind = "IfExpression"
	IF_LET_EXPRESSION       NodeKind = "IfLetExpression"
	MATCH_EXPRESSION        NodeKind = "MatchExpression"
	LOOP_EXPRESSION         NodeKind = "LoopExpression"
	CONST_BLOCK_EXPRESSION  NodeKind = "ConstBlockExpression"
	UNSAFE_BLOCK_EXPRESSION NodeKind = "UnsafeBlockExpression"
	BLOCK_EXPRESSION        NodeKind = "BlockExpression"
	STATEMENTS              NodeKind = "Statements"
	STATEMENT               NodeKind = "Statement"
	LET_STATEMENT           NodeKind = "LetStatement"
	PATTERN                 NodeKind = "Pattern"
	LITERAL_PATTERN         NodeKind = "LiteralPattern"
	IDENTIFIER_PATTERN      NodeKind = "IdentifierPattern"
	WILDCARD_PATTERN        NodeKind = "WildcardPattern"
	REST_PATTERN            NodeKind = "RestPattern"
	REFERENCE_PATTERN       NodeKind = "ReferencePattern"
)

// Node is the base interface of all AST nodes.
type Node interface {
	Kind() NodeKind
}

// Crate is the root of a compiled source file.
type Crate struct {
	InnerAttributes []Node
	Items           []Node
	Tail            Node // optional top-level expression
}

func (n *Crate) Kind() NodeKind { return CRATE }

// Factor preserves a token that survives lowering unchanged.
type Factor struct {
	Token token.Token
}

func (n *Factor) Kind() NodeKind { return FACTOR }

// Literal is a literal value.
type Literal struct {
	Value token.Literal
}

func (n *Literal) Kind() NodeKind { return LITERAL }

// BinaryOperator applies an operator to two operands.
type BinaryOperator struct {
	Operator token.BinaryOperator
	Left     Node
	Right    Node
}

func (n *BinaryOperator) Kind() NodeKind { return BINARY_OPERATOR }

// UnaryOperator applies a prefix operator to one operand.
type UnaryOperator struct {
	Operator string // "-" or "!"
	Operand  Node
}

func (n *UnaryOperator) Kind() NodeKind { return UNARY_OPERATOR }

// Attribute is the payload of an inner or outer attribute.
type Attribute struct {
	Path  []string
	Value Node // optional `= expression` input
}

func (n *Attribute) Kind() NodeKind { return ATTRIBUTE }

// InnerAttribute is a `#![...]` attribute.
type InnerAttribute struct {
	Attribute Node
}

func (n *InnerAttribute) Kind() NodeKind { return INNER_ATTRIBUTE }

// OuterAttribute is a `#[...]` attribute.
type OuterAttribute struct {
	Attribute Node
}

func (n *OuterAttribute) Kind() NodeKind { return OUTER_ATTRIBUTE }

// Visibility is a `pub` marker with its optional restriction keyword.
type Visibility struct {
	Restriction string // "", "crate", "self", "super"
}

func (n *Visibility) Kind() NodeKind { return VISIBILITY }

// FunctionQualifiers collapses the qualifier keywords into flags.
type FunctionQualifiers struct {
	IsConst  bool
	IsAsync  bool
	IsUnsafe bool
	IsSafe   bool
	IsExtern bool
	Abi      string
}

func (n *FunctionQualifiers) Kind() NodeKind { return FUNCTION_QUALIFIERS }

// Function is a function item.
type Function struct {
	OuterAttributes []Node
	Visibility      *Visibility
	Qualifiers      *FunctionQualifiers
	Identifier      string
	Generics        []string
	Parameters      []Node
	ReturnType      Node
	Body            Node // nil when the function was declared with `;`
}

func (n *Function) Kind() NodeKind { return FUNCTION }

// FunctionParam is one `pattern: type` (or bare type) parameter.
type FunctionParam struct {
	Pattern  Node
	Type     Node
	Variadic bool
}

func (n *FunctionParam) Kind() NodeKind { return FUNCTION_PARAM }

// SelfParam is the receiver parameter of a method.
type SelfParam struct {
	Reference bool
	Mutable   bool
	Type      Node
}

func (n *SelfParam) Kind() NodeKind { return SELF_PARAM }

// TypePath is a type annotation naming a (possibly qualified) type.
type TypePath struct {
	Segments []string
}

func (n *TypePath) Kind() NodeKind { return TYPE_PATH }

// ReferenceType is a `&` or `&mut` type annotation.
type ReferenceType struct {
	Mutable bool
	Inner   Node
}

func (n *ReferenceType) Kind() NodeKind { return REFERENCE_TYPE }

// PathExpression names a value by path.
type PathExpression struct {
	Segments []string
}

func (n *PathExpression) Kind() NodeKind { return PATH_EXPRESSION }

// CallExpression applies a callee to arguments.
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

func (n *CallExpression) Kind() NodeKind { return CALL_EXPRESSION }

// MethodCallExpression calls a method on a receiver.
type MethodCallExpression struct {
	Receiver  Node
	Method    string
	Arguments []Node
}

func (n *MethodCallExpression) Kind() NodeKind { return METHOD_CALL_EXPRESSION }

// StructField is one field initializer of a struct expression.
type StructField struct {
	Name  string
	Value Node // nil for the shorthand form
}

// StructExpression builds a struct value.
type StructExpression struct {
	Path   []string
	Fields []StructField
	Base   Node // optional `..base`
}

func (n *StructExpression) Kind() NodeKind { return STRUCT_EXPRESSION }

// ReturnExpression returns from the enclosing function.
type ReturnExpression struct {
	Value Node // optional
}

func (n *ReturnExpression) Kind() NodeKind { return RETURN_EXPRESSION }

// IfExpression is a two- or three-armed conditional.
type IfExpression struct {
	Condition   Node
	Consequent  Node
	Alternative Node // optional: block, if, or if-let
}

func (n *IfExpression) Kind() NodeKind { return IF_EXPRESSION }

// IfLetExpression tests a pattern against a scrutinee.
type IfLetExpression struct {
	Pattern     Node
	Scrutinee   Node
	Consequent  Node
	Alternative Node // optional
}

func (n *IfLetExpression) Kind() NodeKind { return IF_LET_EXPRESSION }

// MatchArm is one arm of a match expression.
type MatchArm struct {
	Pattern Node
	Guard   Node // optional `if` guard
	Value   Node
}

// MatchExpression dispatches over patterns.
type MatchExpression struct {
	Scrutinee Node
	Arms      []MatchArm
}

func (n *MatchExpression) Kind() NodeKind { return MATCH_EXPRESSION }

// LoopExpression is an unconditional loop.
type LoopExpression struct {
	Body Node
}

func (n *LoopExpression) Kind() NodeKind { return LOOP_EXPRESSION }

// ConstBlockExpression is a `const { ... }` block.
type ConstBlockExpression struct {
	Body Node
}

func (n *ConstBlockExpression) Kind() NodeKind { return CONST_BLOCK_EXPRESSION }

// UnsafeBlockExpression is an `unsafe { ... }` block.
type UnsafeBlockExpression struct {
	Body Node
}

func (n *UnsafeBlockExpression) Kind() NodeKind { return UNSAFE_BLOCK_EXPRESSION }

// BlockExpression is a braced statement list with an optional tail value.
type BlockExpression struct {
	InnerAttributes []Node
	Statements      *Statements // nil for an empty block
}

func (n *BlockExpression) Kind() NodeKind { return BLOCK_EXPRESSION }

// Statements is the body of a block.
type Statements struct {
	List []Node
	Tail Node // optional trailing expression
}

func (n *Statements) Kind() NodeKind { return STATEMENTS }

// Statement wraps one statement.
type Statement struct {
	Inner Node // nil for a bare `;`
}

func (n *Statement) Kind() NodeKind { return STATEMENT }

// LetStatement is a variable declaration. Rarity records which of the
// four declaration keywords introduced it.
type LetStatement struct {
	OuterAttributes []Node
	Rarity          token.Rarity
	Pattern         Node
	Type            Node // optional annotation
	Value           Node // optional initializer
	ElseBlock       Node // optional `else` block
}

func (n *LetStatement) Kind() NodeKind { return LET_STATEMENT }

// Pattern is a top-level pattern with alternation.
type Pattern struct {
	Alternatives []Node
}

func (n *Pattern) Kind() NodeKind { return PATTERN }

// LiteralPattern matches a literal value, possibly negated.
type LiteralPattern struct {
	Negative bool
	Value    token.Literal
}

func (n *LiteralPattern) Kind() NodeKind { return LITERAL_PATTERN }

// IdentifierPattern binds a name, optionally with ref/mut markers and a
// sub-pattern.
type IdentifierPattern struct {
	Ref        bool
	Mut        bool
	Identifier string
	SubPattern Node // optional `@` sub-pattern
}

func (n *IdentifierPattern) Kind() NodeKind { return IDENTIFIER_PATTERN }

// WildcardPattern matches anything without binding.
type WildcardPattern struct{}

func (n *WildcardPattern) Kind() NodeKind { return WILDCARD_PATTERN }

// RestPattern matches the remainder of a sequence.
type RestPattern struct{}

func (n *RestPattern) Kind() NodeKind { return REST_PATTERN }

// ReferencePattern matches through one or two references.
type ReferencePattern struct {
	Double  bool
	Mutable bool
	Inner   Node
}

func (n *ReferencePattern) Kind() NodeKind { return REFERENCE_PATTERN }
