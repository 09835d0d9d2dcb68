package ast

import (
	"encoding/json"
	"os"
)

// JSON serialization of the AST for the --ast output and the interactive
// front-end.
// Field names follow the node structs; this is a debug artifact with no
// stability guarantee.

// Dump serializes the tree rooted at node to JSON.
func Dump(node Node) ([]byte, error) {
	return json.Marshal(toMap(node))
}

// WriteJSON serializes the tree rooted at node to a file.
func WriteJSON(node Node, fileName string) error {
	data, err := Dump(node)
	if err != nil {
		return err
	}
	return os.WriteFile(fileName, data, 0644)
}

// toMap converts a node into a plain map with an explicit node_kind
// discriminator so that nested nodes keep their identity in the output.
func toMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}
	fields := map[string]interface{}{
		"node_kind": node.Kind(),
	}

	switch n := node.(type) {
	case *Crate:
		fields["inner_attributes"] = toMaps(n.InnerAttributes)
		fields["items"] = toMaps(n.Items)
		if n.Tail != nil {
			fields["tail"] = toMap(n.Tail)
		}

	case *Factor:
		fields["token"] = n.Token

	case *Literal:
		fields["literal"] = n.Value

	case *BinaryOperator:
		fields["operator"] = n.Operator
		fields["left"] = toMap(n.Left)
		fields["right"] = toMap(n.Right)

	case *UnaryOperator:
		fields["operator"] = n.Operator
		fields["operand"] = toMap(n.Operand)

	case *Attribute:
		fields["path"] = n.Path
		if n.Value != nil {
			fields["value"] = toMap(n.Value)
		}

	case *InnerAttribute:
		fields["attribute"] = toMap(n.Attribute)

	case *OuterAttribute:
		fields["attribute"] = toMap(n.Attribute)

	case *Visibility:
		fields["restriction"] = n.Restriction

	case *FunctionQualifiers:
		fields["is_const"] = n.IsConst
		fields["is_async"] = n.IsAsync
		fields["is_unsafe"] = n.IsUnsafe
		fields["is_safe"] = n.IsSafe
		fields["is_extern"] = n.IsExtern
		fields["abi"] = n.Abi

	case *Function:
		fields["outer_attributes"] = toMaps(n.OuterAttributes)
		if n.Visibility != nil {
			fields["visibility"] = toMap(n.Visibility)
		}
		fields["function_qualifiers"] = toMap(n.Qualifiers)
		fields["identifier"] = n.Identifier
		fields["generics"] = n.Generics
		fields["parameters"] = toMaps(n.Parameters)
		if n.ReturnType != nil {
			fields["return_type"] = toMap(n.ReturnType)
		}
		if n.Body != nil {
			fields["body"] = toMap(n.Body)
		}

	case *FunctionParam:
		if n.Pattern != nil {
			fields["pattern"] = toMap(n.Pattern)
		}
		if n.Type != nil {
			fields["type"] = toMap(n.Type)
		}
		fields["variadic"] = n.Variadic

	case *SelfParam:
		fields["reference"] = n.Reference
		fields["mutable"] = n.Mutable
		if n.Type != nil {
			fields["type"] = toMap(n.Type)
		}

	case *TypePath:
		fields["segments"] = n.Segments

	case *ReferenceType:
		fields["mutable"] = n.Mutable
		fields["inner"] = toMap(n.Inner)

	case *PathExpression:
		fields["segments"] = n.Segments

	case *CallExpression:
		fields["callee"] = toMap(n.Callee)
		fields["arguments"] = toMaps(n.Arguments)

	case *MethodCallExpression:
		fields["receiver"] = toMap(n.Receiver)
		fields["method"] = n.Method
		fields["arguments"] = toMaps(n.Arguments)

	case *StructExpression:
		fields["path"] = n.Path
		structFields := make([]map[string]interface{}, 0, len(n.Fields))
		for _, field := range n.Fields {
			entry := map[string]interface{}{"name": field.Name}
			if field.Value != nil {
				entry["value"] = toMap(field.Value)
			}
			structFields = append(structFields, entry)
		}
		fields["fields"] = structFields
		if n.Base != nil {
			fields["base"] = toMap(n.Base)
		}

	case *ReturnExpression:
		if n.Value != nil {
			fields["value"] = toMap(n.Value)
		}

	case *IfExpression:
		fields["condition"] = toMap(n.Condition)
		fields["consequent"] = toMap(n.Consequent)
		if n.Alternative != nil {
			fields["alternative"] = toMap(n.Alternative)
		}

	case *IfLetExpression:
		fields["pattern"] = toMap(n.Pattern)
		fields["scrutinee"] = toMap(n.Scrutinee)
		fields["consequent"] = toMap(n.Consequent)
		if n.Alternative != nil {
			fields["alternative"] = toMap(n.Alternative)
		}

	case *MatchExpression:
		fields["scrutinee"] = toMap(n.Scrutinee)
		arms := make([]map[string]interface{}, 0, len(n.Arms))
		for _, arm := range n.Arms {
			entry := map[string]interface{}{
				"pattern": toMap(arm.Pattern),
				"value":   toMap(arm.Value),
			}
			if arm.Guard != nil {
				entry["guard"] = toMap(arm.Guard)
			}
			arms = append(arms, entry)
		}
		fields["arms"] = arms

	case *LoopExpression:
		fields["body"] = toMap(n.Body)

	case *ConstBlockExpression:
		fields["body"] = toMap(n.Body)

	case *UnsafeBlockExpression:
		fields["body"] = toMap(n.Body)

	case *BlockExpression:
		fields["inner_attributes"] = toMaps(n.InnerAttributes)
		if n.Statements != nil {
			fields["statements"] = toMap(n.Statements)
		}

	case *Statements:
		fields["statements"] = toMaps(n.List)
		if n.Tail != nil {
			fields["tail"] = toMap(n.Tail)
		}

	case *Statement:
		if n.Inner != nil {
			fields["statement"] = toMap(n.Inner)
		}

	case *LetStatement:
		fields["outer_attributes"] = toMaps(n.OuterAttributes)
		fields["rarity"] = n.Rarity
		fields["pattern"] = toMap(n.Pattern)
		if n.Type != nil {
			fields["type"] = toMap(n.Type)
		}
		if n.Value != nil {
			fields["value"] = toMap(n.Value)
		}
		if n.ElseBlock != nil {
			fields["else_block"] = toMap(n.ElseBlock)
		}

	case *Pattern:
		fields["alternatives"] = toMaps(n.Alternatives)

	case *LiteralPattern:
		fields["negative"] = n.Negative
		fields["literal"] = n.Value

	case *IdentifierPattern:
		fields["ref"] = n.Ref
		fields["mut"] = n.Mut
		fields["identifier"] = n.Identifier
		if n.SubPattern != nil {
			fields["sub_pattern"] = toMap(n.SubPattern)
		}

	case *WildcardPattern, *RestPattern:
		// Kind alone carries the information.

	case *ReferencePattern:
		fields["double"] = n.Double
		fields["mutable"] = n.Mutable
		fields["inner"] = toMap(n.Inner)
	}

	return fields
}

// toMaps converts a node slice, keeping order.
func toMaps(nodes []Node) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, toMap(node))
	}
	return result
}
