package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagc-lang/nagc/ast"
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/errs"
	"github.com/nagc-lang/nagc/lexer"
	"github.com/nagc-lang/nagc/parser"
	"github.com/nagc-lang/nagc/token"
)

// parseSource runs lexer and parser over the source.
func parseSource(t *testing.T, src string) *cst.Node {
	t.Helper()
	rawTokens, err := lexer.NewLexer(src).Tokenize()
	require.NoError(t, err)
	tree, err := parser.NewParser(rawTokens).Parse()
	require.NoError(t, err)
	return tree
}

// analyzeSource runs the full front-end and returns the AST together
// with the analyzer that owns the scope tree.
func analyzeSource(t *testing.T, src string) (*ast.Crate, *SemanticAnalyzer) {
	t.Helper()
	analyzer := NewSemanticAnalyzer()
	crate, err := analyzer.Analyze(parseSource(t, src))
	require.NoError(t, err)
	return crate, analyzer
}

// analyzeFails asserts analysis fails with the given semantic kind.
func analyzeFails(t *testing.T, src string, kind errs.SemanticErrorKind) {
	t.Helper()
	_, err := Check(parseSource(t, src))
	require.Error(t, err)
	assert.True(t, errs.IsSemanticKind(err, kind), "want %s, got %v", kind, err)
}

func TestAnalyzer_ArithmeticLowering(t *testing.T) {
	crate, _ := analyzeSource(t, "1 + 2")

	assert.Empty(t, crate.Items)
	binary, ok := crate.Tail.(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, token.OPERATOR_ADD, binary.Operator)

	left, ok := binary.Left.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "1", left.Value.Symbol)

	right, ok := binary.Right.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "2", right.Value.Symbol)
}

func TestAnalyzer_OperatorOperandsKeepTheirSides(t *testing.T) {
	crate, _ := analyzeSource(t, "7 - 4")

	binary := crate.Tail.(*ast.BinaryOperator)
	assert.Equal(t, token.OPERATOR_SUB, binary.Operator)
	assert.Equal(t, "7", binary.Left.(*ast.Literal).Value.Symbol)
	assert.Equal(t, "4", binary.Right.(*ast.Literal).Value.Symbol)
}

func TestAnalyzer_PrefixLowering(t *testing.T) {
	crate, _ := analyzeSource(t, "-5")

	unary, ok := crate.Tail.(*ast.UnaryOperator)
	require.True(t, ok)
	assert.Equal(t, "-", unary.Operator)
	assert.Equal(t, "5", unary.Operand.(*ast.Literal).Value.Symbol)
}

func TestAnalyzer_LetStatementInBlock(t *testing.T) {
	crate, analyzer := analyzeSource(t,
		"{ let a = 100 + 300 * 30 - 40000 / 1000 + 200 - 100 * 10; }")

	block, ok := crate.Tail.(*ast.BlockExpression)
	require.True(t, ok)
	require.NotNil(t, block.Statements)
	require.Len(t, block.Statements.List, 1)

	statement := block.Statements.List[0].(*ast.Statement)
	letStatement, ok := statement.Inner.(*ast.LetStatement)
	require.True(t, ok)

	assert.Equal(t, token.RARITY_LET, letStatement.Rarity)
	pattern := letStatement.Pattern.(*ast.IdentifierPattern)
	assert.Equal(t, "a", pattern.Identifier)

	// The initializer is the precedence-folded tree; its root is the
	// final subtraction and its right operand the 100 * 10 product.
	value := letStatement.Value.(*ast.BinaryOperator)
	assert.Equal(t, token.OPERATOR_SUB, value.Operator)
	product := value.Right.(*ast.BinaryOperator)
	assert.Equal(t, token.OPERATOR_MUL, product.Operator)

	// The block's scope holds a Variable record for `a`.
	root := analyzer.RootScope()
	require.Len(t, root.Children, 1)
	blockScope := root.Children[0]
	record, found := blockScope.Lookup(SYMBOL_VARIABLE, "a")
	require.True(t, found)
	variable := record.(*VariableRecord)
	assert.Equal(t, token.RARITY_LET, variable.Rarity)
	assert.Equal(t, TYPE_UNRESOLVED, variable.Type)
	assert.Equal(t, uint32(0), variable.Size)
}

func TestAnalyzer_RarityKeywords(t *testing.T) {
	cases := map[string]token.Rarity{
		"{ let a = 1; }": token.RARITY_LET,
		"{ ur a = 1; }":  token.RARITY_UR,
		"{ sr a = 1; }":  token.RARITY_SR,
		"{ nr a = 1; }":  token.RARITY_NR,
	}
	for src, expected := range cases {
		crate, _ := analyzeSource(t, src)
		block := crate.Tail.(*ast.BlockExpression)
		letStatement := block.Statements.List[0].(*ast.Statement).Inner.(*ast.LetStatement)
		assert.Equal(t, expected, letStatement.Rarity, src)
	}
}

func TestAnalyzer_LetWithTypeAnnotation(t *testing.T) {
	_, analyzer := analyzeSource(t, "{ let a: i32 = 1; }")

	blockScope := analyzer.RootScope().Children[0]
	record, found := blockScope.Lookup(SYMBOL_VARIABLE, "a")
	require.True(t, found)
	assert.Equal(t, TYPE_INT32, record.(*VariableRecord).Type)
}

func TestAnalyzer_DuplicateFunction(t *testing.T) {
	analyzeFails(t, "fn f(){} fn f(){}", errs.RedefinitionFunction)
}

func TestAnalyzer_FunctionLowering(t *testing.T) {
	crate, analyzer := analyzeSource(t, "fn add(a: i32, b: i32) -> i32 { a + b }")

	require.Len(t, crate.Items, 1)
	function := crate.Items[0].(*ast.Function)
	assert.Equal(t, "add", function.Identifier)
	assert.Len(t, function.Parameters, 2)
	require.NotNil(t, function.ReturnType)
	assert.Equal(t, []string{"i32"}, function.ReturnType.(*ast.TypePath).Segments)
	require.NotNil(t, function.Body)

	root := analyzer.RootScope()
	record, found := root.Lookup(SYMBOL_FUNCTION, "add")
	require.True(t, found)
	returnType := record.(*FunctionRecord).ReturnType
	require.NotNil(t, returnType)
	assert.Equal(t, TYPE_INT32, *returnType)

	// Parameters are bound in the function's scope.
	require.Len(t, root.Children, 1)
	functionScope := root.Children[0]
	paramRecord, found := functionScope.Lookup(SYMBOL_VARIABLE, "a")
	require.True(t, found)
	assert.Equal(t, TYPE_INT32, paramRecord.(*VariableRecord).Type)
	assert.True(t, functionScope.HasSymbol(SYMBOL_VARIABLE, "b"))
}

func TestAnalyzer_UndefinedVariable(t *testing.T) {
	analyzeFails(t, "{ a; }", errs.UndefinedVariable)
}

func TestAnalyzer_DefinedVariableResolves(t *testing.T) {
	crate, _ := analyzeSource(t, "{ let a = 1; a }")
	block := crate.Tail.(*ast.BlockExpression)
	tail, ok := block.Statements.Tail.(*ast.PathExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, tail.Segments)
}

func TestAnalyzer_UndefinedFunction(t *testing.T) {
	analyzeFails(t, "{ g(); }", errs.UndefinedFunction)
}

func TestAnalyzer_DefinedFunctionCallResolves(t *testing.T) {
	crate, _ := analyzeSource(t, "fn g(){} fn run() { g(); }")
	require.Len(t, crate.Items, 2)
}

func TestAnalyzer_DivisionByZero(t *testing.T) {
	analyzeFails(t, "1 / 0", errs.DivisionByZero)

	// A non-zero divisor is fine, underscores and bases included.
	crate, _ := analyzeSource(t, "1 / 0x10")
	assert.Equal(t, token.OPERATOR_DIV, crate.Tail.(*ast.BinaryOperator).Operator)
}

func TestAnalyzer_ShadowingAcrossScopes(t *testing.T) {
	_, analyzer := analyzeSource(t, "{ let a = 1; { let a = 2; a; } }")

	outer := analyzer.RootScope().Children[0]
	require.Len(t, outer.Children, 1)
	inner := outer.Children[0]

	assert.True(t, outer.HasSymbol(SYMBOL_VARIABLE, "a"))
	assert.True(t, inner.HasSymbol(SYMBOL_VARIABLE, "a"))
	assert.True(t, inner.IsSymbolInAncestors(SYMBOL_VARIABLE, "a"))
}

// lastStatementInner unwraps the final statement of a block. A trailing
// block-flavored expression parses as an ExpressionStatement with an
// optional semicolon, so it lands in the statement list, not the tail.
func lastStatementInner(t *testing.T, crate *ast.Crate) ast.Node {
	t.Helper()
	block, ok := crate.Tail.(*ast.BlockExpression)
	require.True(t, ok)
	require.NotNil(t, block.Statements)
	require.NotEmpty(t, block.Statements.List)
	statement := block.Statements.List[len(block.Statements.List)-1].(*ast.Statement)
	return statement.Inner
}

func TestAnalyzer_IfLowering(t *testing.T) {
	crate, _ := analyzeSource(t, "{ let c = 1; if c { 1 } else { 2 } }")

	ifExpr, ok := lastStatementInner(t, crate).(*ast.IfExpression)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Condition)
	require.NotNil(t, ifExpr.Consequent)
	require.NotNil(t, ifExpr.Alternative)
}

func TestAnalyzer_IfLetBindsPattern(t *testing.T) {
	crate, _ := analyzeSource(t, "{ let v = 1; if let x = v { x } else { 0 } }")

	ifLet, ok := lastStatementInner(t, crate).(*ast.IfLetExpression)
	require.True(t, ok)

	alternation := ifLet.Pattern.(*ast.Pattern)
	pattern := alternation.Alternatives[0].(*ast.IdentifierPattern)
	assert.Equal(t, "x", pattern.Identifier)
}

func TestAnalyzer_MatchLowering(t *testing.T) {
	crate, _ := analyzeSource(t, "{ let v = 1; match v { 1 => 2, other => other, _ => 3 } }")

	match, ok := lastStatementInner(t, crate).(*ast.MatchExpression)
	require.True(t, ok)
	require.Len(t, match.Arms, 3)

	first := match.Arms[0]
	literal := first.Pattern.(*ast.Pattern).Alternatives[0].(*ast.LiteralPattern)
	assert.Equal(t, "1", literal.Value.Symbol)

	// The binding arm's value resolves against the arm's own scope.
	second := match.Arms[1]
	binding := second.Pattern.(*ast.Pattern).Alternatives[0].(*ast.IdentifierPattern)
	assert.Equal(t, "other", binding.Identifier)
}

func TestAnalyzer_StructExpressionLowering(t *testing.T) {
	crate, _ := analyzeSource(t, "{ let x = 1; Point { x: x, y: 2 } }")

	block := crate.Tail.(*ast.BlockExpression)
	structExpr, ok := block.Statements.Tail.(*ast.StructExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"Point"}, structExpr.Path)
	require.Len(t, structExpr.Fields, 2)
	assert.Equal(t, "x", structExpr.Fields[0].Name)
	assert.Equal(t, "y", structExpr.Fields[1].Name)
}

func TestAnalyzer_NegativeLiteralPattern(t *testing.T) {
	crate, _ := analyzeSource(t, "{ let v = 1; if let -1 = v { 2 } }")

	ifLet := lastStatementInner(t, crate).(*ast.IfLetExpression)
	pattern := ifLet.Pattern.(*ast.Pattern).Alternatives[0].(*ast.LiteralPattern)
	assert.True(t, pattern.Negative)
	assert.Equal(t, "1", pattern.Value.Symbol)
}

func TestAnalyzer_QualifiersLowering(t *testing.T) {
	crate, _ := analyzeSource(t, "const async unsafe fn f() {}")

	function := crate.Items[0].(*ast.Function)
	require.NotNil(t, function.Qualifiers)
	assert.True(t, function.Qualifiers.IsConst)
	assert.True(t, function.Qualifiers.IsAsync)
	assert.True(t, function.Qualifiers.IsUnsafe)
	assert.False(t, function.Qualifiers.IsExtern)
}

func TestAnalyzer_ASTDump(t *testing.T) {
	crate, _ := analyzeSource(t, "fn f() { let a = 1; }")

	data, err := ast.Dump(crate)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"node_kind":"Crate"`)
	assert.Contains(t, string(data), `"node_kind":"Function"`)
	assert.Contains(t, string(data), `"rarity":"Let"`)
}
