package sema

import (
	"strconv"
	"strings"

	"github.com/nagc-lang/nagc/ast"
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/token"
)

// SemanticAnalyzer lowers a CST into the AST while building the symbol
// scope tree and checking declaration rules. The analyzer threads a
// current scope pointer through the recursion: entering a block
// expression or a function body creates a fresh child scope, and exiting
// returns to the parent while the child stays in the tree for later
// stages to inspect.
//
// The analyzer does not attempt recovery; the first error aborts the
// current item and propagates upward as a value.
type SemanticAnalyzer struct {
	root *Scope
}

// NewSemanticAnalyzer creates an analyzer with a fresh root scope.
func NewSemanticAnalyzer() *SemanticAnalyzer {
	return &SemanticAnalyzer{
		root: NewScope(),
	}
}

// RootScope exposes the scope tree for the downstream stages and tests.
func (sa *SemanticAnalyzer) RootScope() *Scope {
	return sa.root
}

// Check is the package-level entry point: CST in, AST out.
func Check(root *cst.Node) (*ast.Crate, error) {
	return NewSemanticAnalyzer().Analyze(root)
}

// Analyze lowers a whole crate.
func (sa *SemanticAnalyzer) Analyze(root *cst.Node) (*ast.Crate, error) {
	if root.NodeKind != cst.CRATE {
		return nil, errs.NewSemantic(errs.Unassigned, "analysis must start at a crate, got %s", root.NodeKind)
	}

	crate := &ast.Crate{}
	for _, child := range root.Children {
		switch child.NodeKind {
		case cst.INNER_ATTRIBUTE:
			attribute, err := sa.analyze(child, sa.root)
			if err != nil {
				return nil, err
			}
			crate.InnerAttributes = append(crate.InnerAttributes, attribute)

		case cst.FUNCTION:
			item, err := sa.analyze(child, sa.root)
			if err != nil {
				return nil, err
			}
			crate.Items = append(crate.Items, item)

		default:
			tail, err := sa.analyze(child, sa.root)
			if err != nil {
				return nil, err
			}
			crate.Tail = tail
		}
	}

	return crate, nil
}

// analyze dispatches on the CST node kind. Each kind has exactly one
// deterministic lowering; punctuation factors are dropped along the way.
func (sa *SemanticAnalyzer) analyze(node *cst.Node, scope *Scope) (ast.Node, error) {
	switch node.NodeKind {
	case cst.FACTOR:
		return &ast.Factor{Token: *node.Token}, nil

	case cst.LITERAL:
		return &ast.Literal{Value: *node.Literal}, nil

	case cst.OPERATOR:
		return sa.analyzeOperator(node, scope)

	case cst.EXPRESSION, cst.EXPRESSION_WITHOUT_BLOCK, cst.EXPRESSION_WITH_BLOCK:
		// The wrappers carry no semantic content of their own; their
		// attribute children are dropped and the expression passes
		// through.
		inner := lastNonAttribute(node)
		if inner == nil {
			return nil, errs.NewSemantic(errs.Unassigned, "empty expression wrapper")
		}
		return sa.analyze(inner, scope)

	case cst.EXPRESSION_STATEMENT:
		if len(node.Children) == 0 {
			return nil, errs.NewSemantic(errs.Unassigned, "empty expression statement")
		}
		return sa.analyze(node.Children[0], scope)

	case cst.GROUPED_EXPRESSION:
		return sa.analyze(node.Children[1], scope)

	case cst.PATH_IN_EXPRESSION:
		return sa.analyzePath(node, scope)

	case cst.PATH_EXPR_SEGMENT:
		return &ast.PathExpression{Segments: pathSegments(node)}, nil

	case cst.CALL_EXPRESSION:
		return sa.analyzeCall(node, scope)

	case cst.METHOD_CALL_EXPRESSION:
		return sa.analyzeMethodCall(node, scope)

	case cst.STRUCT_EXPRESSION:
		return sa.analyzeStruct(node.Children[0], scope)

	case cst.RETURN_EXPRESSION:
		result := &ast.ReturnExpression{}
		for _, child := range node.Children[1:] {
			value, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.Value = value
		}
		return result, nil

	case cst.BLOCK_EXPRESSION:
		return sa.analyzeBlock(node, scope)

	case cst.STATEMENTS:
		return sa.analyzeStatements(node, scope)

	case cst.STATEMENT:
		inner := node.Children[0]
		if inner.IsFactorKind(token.SEMICOLON_DELIM) {
			return &ast.Statement{}, nil
		}
		lowered, err := sa.analyze(inner, scope)
		if err != nil {
			return nil, err
		}
		return &ast.Statement{Inner: lowered}, nil

	case cst.LET_STATEMENT:
		return sa.analyzeLetStatement(node, scope)

	case cst.FUNCTION:
		return sa.analyzeFunction(node, scope)

	case cst.IF_EXPRESSION:
		return sa.analyzeIf(node, scope)

	case cst.IF_LET_EXPRESSION:
		return sa.analyzeIfLet(node, scope)

	case cst.MATCH_EXPRESSION:
		return sa.analyzeMatch(node, scope)

	case cst.LOOP_EXPRESSION:
		body, err := sa.analyze(node.Children[1], scope)
		if err != nil {
			return nil, err
		}
		return &ast.LoopExpression{Body: body}, nil

	case cst.CONST_BLOCK_EXPRESSION:
		body, err := sa.analyze(node.Children[1], scope)
		if err != nil {
			return nil, err
		}
		return &ast.ConstBlockExpression{Body: body}, nil

	case cst.UNSAFE_BLOCK_EXPRESSION:
		body, err := sa.analyze(node.Children[1], scope)
		if err != nil {
			return nil, err
		}
		return &ast.UnsafeBlockExpression{Body: body}, nil

	case cst.INNER_ATTRIBUTE:
		attribute, err := sa.analyze(node.FirstChildOfKind(cst.ATTRIBUTE), scope)
		if err != nil {
			return nil, err
		}
		return &ast.InnerAttribute{Attribute: attribute}, nil

	case cst.OUTER_ATTRIBUTE:
		attribute, err := sa.analyze(node.FirstChildOfKind(cst.ATTRIBUTE), scope)
		if err != nil {
			return nil, err
		}
		return &ast.OuterAttribute{Attribute: attribute}, nil

	case cst.ATTRIBUTE:
		result := &ast.Attribute{Path: pathSegments(node.FirstChildOfKind(cst.SIMPLE_PATH))}
		for _, child := range node.Children[1:] {
			if !child.IsLeaf() {
				value, err := sa.analyze(child, scope)
				if err != nil {
					return nil, err
				}
				result.Value = value
			}
		}
		return result, nil

	case cst.VISIBILITY:
		result := &ast.Visibility{}
		for _, child := range node.Children[1:] {
			if child.NodeKind == cst.FACTOR && child.Token != nil && child.Token.Kind == token.KEYWORD_KIND {
				result.Restriction = child.Token.Text
			}
		}
		return result, nil

	case cst.TYPE_PATH:
		return &ast.TypePath{Segments: pathSegments(node)}, nil

	case cst.REFERENCE_TYPE:
		result := &ast.ReferenceType{}
		for _, child := range node.Children {
			if child.IsFactorKeyword(token.KW_MUT) {
				result.Mutable = true
			} else if !child.IsLeaf() {
				inner, err := sa.analyze(child, scope)
				if err != nil {
					return nil, err
				}
				result.Inner = inner
			}
		}
		return result, nil

	case cst.GROUPED_TYPE:
		return sa.analyze(node.Children[1], scope)

	case cst.PATTERN, cst.LITERAL_PATTERN, cst.IDENTIFIER_PATTERN,
		cst.WILDCARD_PATTERN, cst.REST_PATTERN, cst.REFERENCE_PATTERN:
		return sa.analyzePattern(node, scope)
	}

	return nil, errs.NewSemantic(errs.Unassigned, "no lowering for CST node %s", node.NodeKind)
}

// analyzeOperator lowers an Operator node. Two children make a binary
// operator with children[0] as the left and children[1] as the right
// operand; a single child makes a prefix application.
func (sa *SemanticAnalyzer) analyzeOperator(node *cst.Node, scope *Scope) (ast.Node, error) {
	if len(node.Children) == 1 {
		operand, err := sa.analyze(node.Children[0], scope)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperator{
			Operator: string(node.Token.Kind),
			Operand:  operand,
		}, nil
	}
	if len(node.Children) != 2 {
		return nil, errs.NewSemantic(errs.Unassigned, "operator %s has %d operands", node.Token.Kind, len(node.Children))
	}

	left, err := sa.analyze(node.Children[0], scope)
	if err != nil {
		return nil, err
	}
	right, err := sa.analyze(node.Children[1], scope)
	if err != nil {
		return nil, err
	}

	operator, ok := token.BinaryOperatorOf(node.Token.Kind)
	if !ok {
		return nil, errs.NewSemantic(errs.Unassigned, "operator %s has no semantic form", node.Token.Kind)
	}

	if operator == token.OPERATOR_DIV || operator == token.OPERATOR_DIV_ASSIGN {
		if isZeroLiteral(right) {
			return nil, errs.NewSemantic(errs.DivisionByZero, "right operand of %s is the constant zero", node.Token.Text)
		}
	}

	return &ast.BinaryOperator{
		Operator: operator,
		Left:     left,
		Right:    right,
	}, nil
}

// analyzePath lowers a path expression. A single-segment identifier path
// is a symbol use and must resolve as a variable or function somewhere
// in the ancestor chain.
func (sa *SemanticAnalyzer) analyzePath(node *cst.Node, scope *Scope) (ast.Node, error) {
	segments := pathSegments(node)
	result := &ast.PathExpression{Segments: segments}

	if len(segments) == 1 && isPlainIdentifierPath(node) {
		name := segments[0]
		if !scope.IsSymbolInAncestors(SYMBOL_VARIABLE, name) &&
			!scope.IsSymbolInAncestors(SYMBOL_FUNCTION, name) {
			return nil, errs.NewSemantic(errs.UndefinedVariable, "%q is not defined in this scope", name)
		}
	}

	return result, nil
}

// analyzeCall lowers a call expression. A single-segment callee must
// resolve as a function in the ancestor chain.
func (sa *SemanticAnalyzer) analyzeCall(node *cst.Node, scope *Scope) (ast.Node, error) {
	callee := node.Children[0]
	result := &ast.CallExpression{}

	if callee.NodeKind == cst.PATH_IN_EXPRESSION && isPlainIdentifierPath(callee) {
		segments := pathSegments(callee)
		if len(segments) == 1 && !scope.IsSymbolInAncestors(SYMBOL_FUNCTION, segments[0]) {
			return nil, errs.NewSemantic(errs.UndefinedFunction, "function %q is not defined", segments[0])
		}
		result.Callee = &ast.PathExpression{Segments: segments}
	} else {
		lowered, err := sa.analyze(callee, scope)
		if err != nil {
			return nil, err
		}
		result.Callee = lowered
	}

	arguments, err := sa.analyzeCallParams(node.FirstChildOfKind(cst.CALL_PARAMS), scope)
	if err != nil {
		return nil, err
	}
	result.Arguments = arguments

	return result, nil
}

// analyzeMethodCall lowers a method call expression.
func (sa *SemanticAnalyzer) analyzeMethodCall(node *cst.Node, scope *Scope) (ast.Node, error) {
	receiver, err := sa.analyze(node.Children[0], scope)
	if err != nil {
		return nil, err
	}

	method := ""
	if segment := node.FirstChildOfKind(cst.PATH_EXPR_SEGMENT); segment != nil {
		segments := pathSegments(segment)
		if len(segments) > 0 {
			method = segments[0]
		}
	}

	arguments, err := sa.analyzeCallParams(node.FirstChildOfKind(cst.CALL_PARAMS), scope)
	if err != nil {
		return nil, err
	}

	return &ast.MethodCallExpression{
		Receiver:  receiver,
		Method:    method,
		Arguments: arguments,
	}, nil
}

// analyzeCallParams lowers the argument list of a call. A nil node means
// an empty list.
func (sa *SemanticAnalyzer) analyzeCallParams(node *cst.Node, scope *Scope) ([]ast.Node, error) {
	if node == nil {
		return nil, nil
	}
	var arguments []ast.Node
	for _, child := range node.Children {
		if child.IsLeaf() {
			continue // comma
		}
		argument, err := sa.analyze(child, scope)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}
	return arguments, nil
}

// analyzeStruct lowers a StructExprStruct node.
func (sa *SemanticAnalyzer) analyzeStruct(node *cst.Node, scope *Scope) (ast.Node, error) {
	result := &ast.StructExpression{
		Path: pathSegments(node.FirstChildOfKind(cst.PATH_IN_EXPRESSION)),
	}

	if fields := node.FirstChildOfKind(cst.STRUCT_EXPR_FIELDS); fields != nil {
		for _, child := range fields.Children {
			switch child.NodeKind {
			case cst.STRUCT_EXPR_FIELD:
				field, err := sa.analyzeStructField(child, scope)
				if err != nil {
					return nil, err
				}
				result.Fields = append(result.Fields, field)
			case cst.STRUCT_BASE:
				base, err := sa.analyze(child.Children[1], scope)
				if err != nil {
					return nil, err
				}
				result.Base = base
			}
		}
	}
	if base := node.FirstChildOfKind(cst.STRUCT_BASE); base != nil {
		lowered, err := sa.analyze(base.Children[1], scope)
		if err != nil {
			return nil, err
		}
		result.Base = lowered
	}

	return result, nil
}

// analyzeStructField lowers one field initializer.
func (sa *SemanticAnalyzer) analyzeStructField(node *cst.Node, scope *Scope) (ast.StructField, error) {
	field := ast.StructField{}
	for _, child := range node.Children {
		switch {
		case child.NodeKind == cst.OUTER_ATTRIBUTE:
			// Field attributes carry no semantic content yet.
		case child.NodeKind == cst.FACTOR && child.Token != nil:
			if child.Token.Kind == token.IDENTIFIER_KIND || child.Token.Kind == token.LITERAL_KIND {
				field.Name = child.Token.Text
			}
		case !child.IsLeaf():
			value, err := sa.analyze(child, scope)
			if err != nil {
				return field, err
			}
			field.Value = value
		}
	}
	return field, nil
}

// analyzeBlock lowers a block expression in a fresh child scope. The
// child stays attached to the tree after the walk returns.
func (sa *SemanticAnalyzer) analyzeBlock(node *cst.Node, scope *Scope) (ast.Node, error) {
	blockScope := scope.AddChild()
	result := &ast.BlockExpression{}

	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.INNER_ATTRIBUTE:
			attribute, err := sa.analyze(child, blockScope)
			if err != nil {
				return nil, err
			}
			result.InnerAttributes = append(result.InnerAttributes, attribute)

		case cst.STATEMENTS:
			statements, err := sa.analyzeStatements(child, blockScope)
			if err != nil {
				return nil, err
			}
			result.Statements = statements
		}
	}

	return result, nil
}

// analyzeStatements lowers a statement list with its optional tail.
func (sa *SemanticAnalyzer) analyzeStatements(node *cst.Node, scope *Scope) (*ast.Statements, error) {
	result := &ast.Statements{}
	for _, child := range node.Children {
		if child.NodeKind == cst.STATEMENT {
			statement, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.List = append(result.List, statement)
			continue
		}
		tail, err := sa.analyze(child, scope)
		if err != nil {
			return nil, err
		}
		result.Tail = tail
	}
	return result, nil
}

// analyzeLetStatement lowers a variable declaration and records every
// name the pattern binds in the current scope with the declared rarity
// and a size of 0 pending type inference. The recorded type is the
// annotated primitive type, or the placeholder type when the annotation
// is absent or not a primitive name.
func (sa *SemanticAnalyzer) analyzeLetStatement(node *cst.Node, scope *Scope) (ast.Node, error) {
	result := &ast.LetStatement{}
	seenElse := false

	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.OUTER_ATTRIBUTE:
			attribute, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.OuterAttributes = append(result.OuterAttributes, attribute)

		case cst.FACTOR:
			tok := child.Token
			if tok != nil && tok.Kind == token.KEYWORD_KIND {
				if rarity, ok := token.RarityOf(tok.Keyword); ok {
					result.Rarity = rarity
				}
				if tok.Keyword == token.KW_ELSE {
					seenElse = true
				}
			}

		case cst.TYPE_PATH, cst.REFERENCE_TYPE, cst.GROUPED_TYPE:
			typeExpression, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.Type = typeExpression

		case cst.PATTERN, cst.LITERAL_PATTERN, cst.IDENTIFIER_PATTERN,
			cst.WILDCARD_PATTERN, cst.REST_PATTERN, cst.REFERENCE_PATTERN:
			pattern, err := sa.analyzePattern(child, scope)
			if err != nil {
				return nil, err
			}
			result.Pattern = pattern

		case cst.BLOCK_EXPRESSION:
			block, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			if seenElse {
				result.ElseBlock = block
			} else {
				result.Value = block
			}

		default:
			value, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.Value = value
		}
	}

	symbolType := TYPE_UNRESOLVED
	if typePath, ok := result.Type.(*ast.TypePath); ok && len(typePath.Segments) == 1 {
		if resolved, known := SymbolTypeFromName(typePath.Segments[0]); known {
			symbolType = resolved
		}
	}
	for _, name := range patternIdentifiers(result.Pattern) {
		scope.InsertVariable(name, result.Rarity, symbolType, 0)
	}

	return result, nil
}

// analyzeFunction lowers a function item. The function name is recorded
// in the current scope before the body is analyzed so that the body can
// call the function recursively; parameters are bound as variables in
// the body's parent scope.
func (sa *SemanticAnalyzer) analyzeFunction(node *cst.Node, scope *Scope) (ast.Node, error) {
	result := &ast.Function{}

	var parametersNode *cst.Node
	var bodyNode *cst.Node

	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.OUTER_ATTRIBUTE:
			attribute, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.OuterAttributes = append(result.OuterAttributes, attribute)

		case cst.VISIBILITY:
			visibility, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.Visibility = visibility.(*ast.Visibility)

		case cst.FUNCTION_QUALIFIERS:
			result.Qualifiers = lowerQualifiers(child)

		case cst.FACTOR:
			if child.Token != nil && child.Token.Kind == token.IDENTIFIER_KIND {
				result.Identifier = child.Token.Text
			}

		case cst.GENERIC_PARAMS:
			for _, generic := range child.Children {
				if name := generic.IdentifierText(); name != "" {
					result.Generics = append(result.Generics, name)
				}
			}

		case cst.FUNCTION_PARAMETERS:
			parametersNode = child

		case cst.FUNCTION_RETURN_TYPE:
			for _, part := range child.Children {
				if !part.IsLeaf() {
					returnType, err := sa.analyze(part, scope)
					if err != nil {
						return nil, err
					}
					result.ReturnType = returnType
				}
			}

		case cst.BLOCK_EXPRESSION:
			bodyNode = child
		}
	}

	if result.Identifier == "" {
		return nil, errs.NewSemantic(errs.Unassigned, "function item has no name")
	}
	if !scope.InsertFunction(result.Identifier, functionReturnSymbolType(result.ReturnType)) {
		return nil, errs.NewSemantic(errs.RedefinitionFunction, "function %q is defined twice in this scope", result.Identifier)
	}

	functionScope := scope.AddChild()

	if parametersNode != nil {
		parameters, err := sa.analyzeParameters(parametersNode, functionScope)
		if err != nil {
			return nil, err
		}
		result.Parameters = parameters
	}

	if bodyNode != nil {
		body, err := sa.analyze(bodyNode, functionScope)
		if err != nil {
			return nil, err
		}
		result.Body = body
	}

	return result, nil
}

// analyzeParameters lowers a parameter list and binds each parameter
// name as a variable in the function's scope.
func (sa *SemanticAnalyzer) analyzeParameters(node *cst.Node, functionScope *Scope) ([]ast.Node, error) {
	var parameters []ast.Node

	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.SELF_PARAM:
			selfParam := &ast.SelfParam{}
			for _, part := range child.Children {
				switch {
				case part.IsFactorKind(token.AND_OP):
					selfParam.Reference = true
				case part.IsFactorKeyword(token.KW_MUT):
					selfParam.Mutable = true
				case !part.IsLeaf():
					selfType, err := sa.analyze(part, functionScope)
					if err != nil {
						return nil, err
					}
					selfParam.Type = selfType
				}
			}
			functionScope.InsertVariable("self", token.RARITY_LET, TYPE_UNRESOLVED, 0)
			parameters = append(parameters, selfParam)

		case cst.FUNCTION_PARAM:
			parameter, err := sa.analyzeParam(child, functionScope)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, parameter)
		}
	}

	return parameters, nil
}

// analyzeParam lowers one parameter.
func (sa *SemanticAnalyzer) analyzeParam(node *cst.Node, functionScope *Scope) (ast.Node, error) {
	parameter := &ast.FunctionParam{}

	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.OUTER_ATTRIBUTE:
			// Parameter attributes carry no semantic content yet.

		case cst.FUNCTION_PARAM_PATTERN:
			for _, part := range child.Children {
				switch part.NodeKind {
				case cst.TYPE_PATH, cst.REFERENCE_TYPE, cst.GROUPED_TYPE:
					paramType, err := sa.analyze(part, functionScope)
					if err != nil {
						return nil, err
					}
					parameter.Type = paramType
				case cst.FACTOR:
					if part.Token != nil && part.Token.Kind == token.DOTDOTDOT_OP {
						parameter.Variadic = true
					}
				default:
					pattern, err := sa.analyzePattern(part, functionScope)
					if err != nil {
						return nil, err
					}
					parameter.Pattern = pattern
				}
			}

		case cst.TYPE_PATH, cst.REFERENCE_TYPE, cst.GROUPED_TYPE:
			paramType, err := sa.analyze(child, functionScope)
			if err != nil {
				return nil, err
			}
			parameter.Type = paramType

		case cst.FACTOR:
			if child.Token != nil && child.Token.Kind == token.DOTDOTDOT_OP {
				parameter.Variadic = true
			}
		}
	}

	symbolType := TYPE_UNRESOLVED
	if typePath, ok := parameter.Type.(*ast.TypePath); ok && len(typePath.Segments) == 1 {
		if resolved, known := SymbolTypeFromName(typePath.Segments[0]); known {
			symbolType = resolved
		}
	}
	for _, name := range patternIdentifiers(parameter.Pattern) {
		functionScope.InsertVariable(name, token.RARITY_LET, symbolType, 0)
	}

	return parameter, nil
}

// analyzeIf lowers an if expression.
func (sa *SemanticAnalyzer) analyzeIf(node *cst.Node, scope *Scope) (ast.Node, error) {
	result := &ast.IfExpression{}
	position := 0

	for _, child := range node.Children {
		if child.IsLeaf() {
			continue
		}
		lowered, err := sa.analyze(child, scope)
		if err != nil {
			return nil, err
		}
		switch position {
		case 0:
			result.Condition = lowered
		case 1:
			result.Consequent = lowered
		default:
			result.Alternative = lowered
		}
		position++
	}

	return result, nil
}

// analyzeIfLet lowers an if-let expression. The pattern's bindings live
// in a fresh scope that encloses the consequent block.
func (sa *SemanticAnalyzer) analyzeIfLet(node *cst.Node, scope *Scope) (ast.Node, error) {
	result := &ast.IfLetExpression{}
	bindingScope := scope.AddChild()
	position := 0

	for _, child := range node.Children {
		if child.IsLeaf() {
			continue
		}
		switch position {
		case 0:
			pattern, err := sa.analyzePattern(child, scope)
			if err != nil {
				return nil, err
			}
			result.Pattern = pattern
			for _, name := range patternIdentifiers(pattern) {
				bindingScope.InsertVariable(name, token.RARITY_LET, TYPE_UNRESOLVED, 0)
			}
		case 1:
			// The scrutinee sees the outer scope, not the bindings.
			scrutinee, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.Scrutinee = scrutinee
		case 2:
			consequent, err := sa.analyze(child, bindingScope)
			if err != nil {
				return nil, err
			}
			result.Consequent = consequent
		default:
			alternative, err := sa.analyze(child, scope)
			if err != nil {
				return nil, err
			}
			result.Alternative = alternative
		}
		position++
	}

	return result, nil
}

// analyzeMatch lowers a match expression. Each arm's pattern bindings
// live in their own scope around the arm's value.
func (sa *SemanticAnalyzer) analyzeMatch(node *cst.Node, scope *Scope) (ast.Node, error) {
	result := &ast.MatchExpression{}

	scrutineeNode := lastNonAttribute(&cst.Node{Children: node.Children[:3]})
	if scrutineeNode == nil {
		return nil, errs.NewSemantic(errs.Unassigned, "match expression has no scrutinee")
	}
	scrutinee, err := sa.analyze(scrutineeNode, scope)
	if err != nil {
		return nil, err
	}
	result.Scrutinee = scrutinee

	arms := node.FirstChildOfKind(cst.MATCH_ARMS)
	if arms == nil {
		return result, nil
	}

	var currentArm *ast.MatchArm
	var armScope *Scope
	for _, child := range arms.Children {
		switch child.NodeKind {
		case cst.MATCH_ARM:
			if currentArm != nil {
				result.Arms = append(result.Arms, *currentArm)
			}
			currentArm = &ast.MatchArm{}
			armScope = scope.AddChild()

			for _, part := range child.Children {
				switch part.NodeKind {
				case cst.OUTER_ATTRIBUTE:
					// Arm attributes carry no semantic content yet.
				case cst.FACTOR:
					// The guard's `if` keyword.
				default:
					if currentArm.Pattern == nil {
						pattern, err := sa.analyzePattern(part, scope)
						if err != nil {
							return nil, err
						}
						currentArm.Pattern = pattern
						for _, name := range patternIdentifiers(pattern) {
							armScope.InsertVariable(name, token.RARITY_LET, TYPE_UNRESOLVED, 0)
						}
					} else {
						guard, err := sa.analyze(part, armScope)
						if err != nil {
							return nil, err
						}
						currentArm.Guard = guard
					}
				}
			}

		case cst.FACTOR:
			// `=>` and `,` separators.

		default:
			if currentArm == nil {
				return nil, errs.NewSemantic(errs.Unassigned, "match arm value without a pattern")
			}
			value, err := sa.analyze(child, armScope)
			if err != nil {
				return nil, err
			}
			currentArm.Value = value
		}
	}
	if currentArm != nil {
		result.Arms = append(result.Arms, *currentArm)
	}

	return result, nil
}

// analyzePattern lowers the pattern productions.
func (sa *SemanticAnalyzer) analyzePattern(node *cst.Node, scope *Scope) (ast.Node, error) {
	switch node.NodeKind {
	case cst.PATTERN:
		result := &ast.Pattern{}
		for _, child := range node.Children {
			if child.IsLeaf() {
				continue // `|` separators
			}
			alternative, err := sa.analyzePattern(child, scope)
			if err != nil {
				return nil, err
			}
			result.Alternatives = append(result.Alternatives, alternative)
		}
		return result, nil

	case cst.LITERAL_PATTERN:
		result := &ast.LiteralPattern{}
		if node.Literal != nil {
			result.Value = *node.Literal
		}
		for _, child := range node.Children {
			if child.IsFactorKind(token.MINUS_OP) {
				result.Negative = true
			}
		}
		return result, nil

	case cst.IDENTIFIER_PATTERN:
		result := &ast.IdentifierPattern{}
		for _, child := range node.Children {
			switch {
			case child.IsFactorKeyword(token.KW_REF):
				result.Ref = true
			case child.IsFactorKeyword(token.KW_MUT):
				result.Mut = true
			case child.NodeKind == cst.FACTOR && child.Token != nil && child.Token.Kind == token.IDENTIFIER_KIND:
				result.Identifier = child.Token.Text
			case !child.IsLeaf():
				sub, err := sa.analyzePattern(child, scope)
				if err != nil {
					return nil, err
				}
				result.SubPattern = sub
			}
		}
		return result, nil

	case cst.WILDCARD_PATTERN:
		return &ast.WildcardPattern{}, nil

	case cst.REST_PATTERN:
		return &ast.RestPattern{}, nil

	case cst.REFERENCE_PATTERN:
		result := &ast.ReferencePattern{}
		for _, child := range node.Children {
			switch {
			case child.IsFactorKind(token.ANDAND_OP):
				result.Double = true
			case child.IsFactorKind(token.AND_OP):
				// single reference
			case child.IsFactorKeyword(token.KW_MUT):
				result.Mutable = true
			case !child.IsLeaf():
				inner, err := sa.analyzePattern(child, scope)
				if err != nil {
					return nil, err
				}
				result.Inner = inner
			}
		}
		return result, nil
	}

	return nil, errs.NewSemantic(errs.Unassigned, "no lowering for pattern node %s", node.NodeKind)
}

//
// Helpers
//

// lowerQualifiers collapses the qualifier factors into flags.
func lowerQualifiers(node *cst.Node) *ast.FunctionQualifiers {
	result := &ast.FunctionQualifiers{}
	for _, child := range node.Children {
		switch {
		case child.IsFactorKeyword(token.KW_CONST):
			result.IsConst = true
		case child.IsFactorKeyword(token.KW_ASYNC):
			result.IsAsync = true
		case child.IsFactorKeyword(token.KW_UNSAFE):
			result.IsUnsafe = true
		case child.IsFactorKeyword(token.KW_EXTERN):
			result.IsExtern = true
		case child.NodeKind == cst.FACTOR && child.Token != nil && child.Token.Text == "safe":
			result.IsSafe = true
		case child.NodeKind == cst.LITERAL && child.Literal != nil:
			result.Abi = child.Literal.Symbol
		}
	}
	return result
}

// pathSegments collects the identifier and keyword texts of a path-like
// node, skipping the `::` separators.
func pathSegments(node *cst.Node) []string {
	if node == nil {
		return nil
	}
	var segments []string
	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.FACTOR:
			if child.Token != nil &&
				(child.Token.Kind == token.IDENTIFIER_KIND || child.Token.Kind == token.KEYWORD_KIND) {
				segments = append(segments, child.Token.Text)
			}
		case cst.PATH_EXPR_SEGMENT:
			segments = append(segments, pathSegments(child)...)
		}
	}
	return segments
}

// isPlainIdentifierPath reports whether the path is a single bare
// identifier: no leading `::`, no keyword segment.
func isPlainIdentifierPath(node *cst.Node) bool {
	identifiers := 0
	for _, child := range node.Children {
		switch child.NodeKind {
		case cst.FACTOR:
			if child.Token != nil && child.Token.Kind == token.PATH_SEPARATOR {
				return false
			}
		case cst.PATH_EXPR_SEGMENT:
			inner := child.Children[0]
			if inner.Token == nil || inner.Token.Kind != token.IDENTIFIER_KIND {
				return false
			}
			identifiers++
		}
	}
	return identifiers == 1
}

// lastNonAttribute returns the last child that is not an attribute or a
// punctuation leaf.
func lastNonAttribute(node *cst.Node) *cst.Node {
	var result *cst.Node
	for _, child := range node.Children {
		if child.NodeKind == cst.OUTER_ATTRIBUTE || child.NodeKind == cst.INNER_ATTRIBUTE {
			continue
		}
		if child.NodeKind == cst.FACTOR && child.Token != nil && child.Token.Kind != token.IDENTIFIER_KIND {
			continue
		}
		result = child
	}
	return result
}

// patternIdentifiers collects every name a lowered pattern binds.
func patternIdentifiers(pattern ast.Node) []string {
	switch p := pattern.(type) {
	case *ast.Pattern:
		var names []string
		for _, alternative := range p.Alternatives {
			names = append(names, patternIdentifiers(alternative)...)
		}
		return names
	case *ast.IdentifierPattern:
		names := []string{p.Identifier}
		if p.SubPattern != nil {
			names = append(names, patternIdentifiers(p.SubPattern)...)
		}
		return names
	case *ast.ReferencePattern:
		return patternIdentifiers(p.Inner)
	}
	return nil
}

// isZeroLiteral reports whether the node is an integer literal whose
// value is zero, underscore separators ignored.
func isZeroLiteral(node ast.Node) bool {
	literal, ok := node.(*ast.Literal)
	if !ok || literal.Value.Kind != token.INTEGER_LITERAL {
		return false
	}
	symbol := strings.ReplaceAll(literal.Value.Symbol, "_", "")
	value, err := strconv.ParseUint(symbol, 0, 64)
	if err != nil {
		return false
	}
	return value == 0
}

// functionReturnSymbolType resolves a lowered return type annotation to
// the SymbolType recorded on the function's symbol. It returns nil when
// there is no annotation or the annotation is not a primitive type name.
func functionReturnSymbolType(returnType ast.Node) *SymbolType {
	typePath, ok := returnType.(*ast.TypePath)
	if !ok || len(typePath.Segments) != 1 {
		return nil
	}
	symbolType, known := SymbolTypeFromName(typePath.Segments[0])
	if !known {
		return nil
	}
	return &symbolType
}
