// Package cst defines the Concrete Syntax Tree produced by the parser.
//
// The CST is lossless: every token consumed by a rule becomes a Factor,
// Operator or Literal leaf of the node the rule returns, punctuation
// included, and the children of every node are ordered by source
// position. Concatenating the raw text of a CST's leaves in left-to-right
// depth-first order therefore reproduces the input, modulo the whitespace
// and comments the token stream elides.
package cst

import (
	"encoding/json"
	"os"

	"github.com/nagc-lang/nagc/token"
)

// NodeKind identifies the grammar production a node was built by.
type NodeKind string

const (
	CRATE NodeKind = "Crate"

	// Leaves
	FACTOR   NodeKind = "Factor"   // one token at a source position
	OPERATOR NodeKind = "Operator" // a glued operator token; children are its operands
	LITERAL  NodeKind = "Literal"  // a literal token

	// Attributes and items
	INNER_ATTRIBUTE NodeKind = "InnerAttribute"
	OUTER_ATTRIBUTE NodeKind = "OuterAttribute"
	ATTRIBUTE       NodeKind = "Attribute"
	SIMPLE_PATH     NodeKind = "SimplePath"
	VISIBILITY      NodeKind = "Visibility"

	// Functions
	FUNCTION               NodeKind = "Function"
	FUNCTION_QUALIFIERS    NodeKind = "FunctionQualifiers"
	GENERIC_PARAMS         NodeKind = "GenericParams"
	FUNCTION_PARAMETERS    NodeKind = "FunctionParameters"
	SELF_PARAM             NodeKind = "SelfParam"
	FUNCTION_PARAM         NodeKind = "FunctionParam"
	FUNCTION_PARAM_PATTERN NodeKind = "FunctionParamPattern"
	FUNCTION_RETURN_TYPE   NodeKind = "FunctionReturnType"

	// Types
	TYPE_PATH      NodeKind = "TypePath"
	REFERENCE_TYPE NodeKind = "ReferenceType"
	GROUPED_TYPE   NodeKind = "GroupedType"

	// Expressions
	EXPRESSION               NodeKind = "Expression"
	EXPRESSION_WITH_BLOCK    NodeKind = "ExpressionWithBlock"
	EXPRESSION_WITHOUT_BLOCK NodeKind = "ExpressionWithoutBlock"
	BLOCK_EXPRESSION         NodeKind = "BlockExpression"
	PATH_IN_EXPRESSION       NodeKind = "PathInExpression"
	PATH_EXPR_SEGMENT        NodeKind = "PathExprSegment"
	GROUPED_EXPRESSION       NodeKind = "GroupedExpression"
	CALL_EXPRESSION          NodeKind = "CallExpression"
	METHOD_CALL_EXPRESSION   NodeKind = "MethodCallExpression"
	CALL_PARAMS              NodeKind = "CallParams"
	STRUCT_EXPRESSION        NodeKind = "StructExpression"
	STRUCT_EXPR_STRUCT       NodeKind = "StructExprStruct"
	STRUCT_EXPR_FIELDS       NodeKind = "StructExprFields"
	STRUCT_EXPR_FIELD        NodeKind = "StructExprField"
	STRUCT_BASE              NodeKind = "StructBase"
	RETURN_EXPRESSION        NodeKind = "ReturnExpression"
	IF_EXPRESSION            NodeKind = "IfExpression"
	IF_LET_EXPRESSION        NodeKind = "IfLetExpression"
	MATCH_EXPRESSION         NodeKind = "MatchExpression"
	MATCH_ARMS               NodeKind = "MatchArms"
	MATCH_ARM                NodeKind = "MatchArm"
	LOOP_EXPRESSION          NodeKind = "LoopExpression"
	CONST_BLOCK_EXPRESSION   NodeKind = "ConstBlockExpression"
	UNSAFE_BLOCK_EXPRESSION  NodeKind = "UnsafeBlockExpression"

	// Statements
	STATEMENTS           NodeKind = "Statements"
	STATEMENT            NodeKind = "Statement"
	LET_STATEMENT        NodeKind = "LetStatement"
	EXPRESSION_STATEMENT NodeKind = "ExpressionStatement"

	// Patterns
	PATTERN            NodeKind = "Pattern"
	LITERAL_PATTERN    NodeKind = "LiteralPattern"
	IDENTIFIER_PATTERN NodeKind = "IdentifierPattern"
	WILDCARD_PATTERN   NodeKind = "WildcardPattern"
	REST_PATTERN       NodeKind = "RestPattern"
	REFERENCE_PATTERN  NodeKind = "ReferencePattern"
)

// Node is one node of the Concrete Syntax Tree.
//
// Fields:
//   - NodeKind: The production this node mirrors
//   - Token: The underlying token (Factor and Operator leaves)
//   - Literal: The literal descriptor (Literal leaves and LiteralPattern)
//   - Row, Column: Source position of leaf nodes (1-indexed)
//   - Children: Ordered sub-nodes; for Operator nodes these are the
//     operands, for every other kind the node's syntactic pieces in
//     source order, punctuation included
type Node struct {
	NodeKind NodeKind       `json:"node_kind"`
	Token    *token.Token   `json:"token,omitempty"`
	Literal  *token.Literal `json:"literal,omitempty"`
	Row      int            `json:"row,omitempty"`
	Column   int            `json:"column,omitempty"`
	Children []*Node        `json:"children,omitempty"`
}

// NewNode creates an interior node of the given kind.
func NewNode(kind NodeKind, children ...*Node) *Node {
	return &Node{
		NodeKind: kind,
		Children: children,
	}
}

// NewFactor creates a Factor leaf wrapping a single token.
func NewFactor(tok token.Token) *Node {
	return &Node{
		NodeKind: FACTOR,
		Token:    &tok,
		Row:      tok.Row,
		Column:   tok.Column,
	}
}

// NewOperator creates an Operator node for a glued operator token.
// Its operands are attached as children by the Pratt loop.
func NewOperator(tok token.Token) *Node {
	return &Node{
		NodeKind: OPERATOR,
		Token:    &tok,
		Row:      tok.Row,
		Column:   tok.Column,
	}
}

// NewLiteral creates a Literal leaf for a literal or boolean token.
func NewLiteral(tok token.Token, literal *token.Literal) *Node {
	return &Node{
		NodeKind: LITERAL,
		Token:    &tok,
		Literal:  literal,
		Row:      tok.Row,
		Column:   tok.Column,
	}
}

// AddChild appends a sub-node, keeping source order.
func (node *Node) AddChild(child *Node) {
	node.Children = append(node.Children, child)
}

// IsLeaf reports whether the node wraps a single token.
func (node *Node) IsLeaf() bool {
	switch node.NodeKind {
	case FACTOR, OPERATOR, LITERAL:
		return true
	}
	return false
}

// IsFactorKind reports whether the node is a Factor wrapping a token of
// the given kind.
func (node *Node) IsFactorKind(kind token.Kind) bool {
	return node.NodeKind == FACTOR && node.Token != nil && node.Token.Kind == kind
}

// IsFactorKeyword reports whether the node is a Factor wrapping the given
// keyword.
func (node *Node) IsFactorKeyword(keyword token.Keyword) bool {
	return node.NodeKind == FACTOR && node.Token != nil && node.Token.IsKeyword(keyword)
}

// IdentifierText returns the identifier string of a Factor wrapping an
// identifier token, or "" when the node is something else.
func (node *Node) IdentifierText() string {
	if node.NodeKind == FACTOR && node.Token != nil && node.Token.Kind == token.IDENTIFIER_KIND {
		return node.Token.Text
	}
	return ""
}

// Leaves appends every leaf of the tree to out in left-to-right
// depth-first order and returns the extended slice.
func (node *Node) Leaves(out []*Node) []*Node {
	if node.IsLeaf() && len(node.Children) == 0 {
		return append(out, node)
	}
	// Operator leaves with operands emit themselves between their two
	// children so that leaf order equals source order.
	if node.NodeKind == OPERATOR {
		if len(node.Children) == 1 {
			// Prefix operator: the operator precedes its operand.
			out = append(out, &Node{NodeKind: OPERATOR, Token: node.Token, Row: node.Row, Column: node.Column})
			return node.Children[0].Leaves(out)
		}
		if len(node.Children) == 2 {
			out = node.Children[0].Leaves(out)
			out = append(out, &Node{NodeKind: OPERATOR, Token: node.Token, Row: node.Row, Column: node.Column})
			return node.Children[1].Leaves(out)
		}
	}
	for _, child := range node.Children {
		out = child.Leaves(out)
	}
	return out
}

// SourceText reconstructs the trivia-free source text covered by the node
// by concatenating its leaves' raw token text in depth-first order. The
// result equals the input with every whitespace and comment removed; the
// CST faithfulness checks in the tests rely on this.
func (node *Node) SourceText() string {
	leaves := node.Leaves(nil)
	text := ""
	for _, leaf := range leaves {
		if leaf.Token != nil {
			text += leaf.Token.Text
		}
	}
	return text
}

// FirstChildOfKind returns the first direct child of the given kind, or
// nil when there is none.
func (node *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range node.Children {
		if child.NodeKind == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns every direct child of the given kind, in order.
func (node *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range node.Children {
		if child.NodeKind == kind {
			result = append(result, child)
		}
	}
	return result
}

// WriteJSON serializes the tree to a file as JSON. This is a debug
// artifact with no stability guarantee.
func (node *Node) WriteJSON(fileName string) error {
	data, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return os.WriteFile(fileName, data, 0644)
}
