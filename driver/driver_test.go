package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagc-lang/nagc/cst"
)

func TestCompile_Pipeline(t *testing.T) {
	tree, analyzed, err := Compile("fn add(a: i32, b: i32) -> i32 { a + b }", false, "")
	require.NoError(t, err)

	assert.Equal(t, cst.CRATE, tree.NodeKind)
	require.Len(t, analyzed.Items, 1)
}

func TestCompile_LexicalError(t *testing.T) {
	_, _, err := Compile("0b012", false, "")
	assert.Error(t, err)
}

func TestCompile_SyntaxError(t *testing.T) {
	_, _, err := Compile("fn", false, "")
	assert.Error(t, err)
}

func TestCompile_SemanticError(t *testing.T) {
	_, _, err := Compile("fn f(){} fn f(){}", false, "")
	assert.Error(t, err)
}

func TestCompile_TraceLog(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "parse.log")

	_, _, err := Compile("1 + 2", true, traceFile)
	require.NoError(t, err)

	data, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "First call to ")
	assert.Contains(t, string(data), "WriteMemo ")
}

func TestRunCompile_TargetFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.nag")
	require.NoError(t, os.WriteFile(source, []byte("fn main() { let x = 1; }\n"), 0644))

	status := RunCompile([]string{"--path", source, "--ast"})
	assert.Equal(t, Success, status)

	// --ast writes the dump next to the input.
	_, err := os.Stat(filepath.Join(dir, "main.ast"))
	assert.NoError(t, err)
}

func TestRunCompile_FailureStatus(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "broken.nag")
	require.NoError(t, os.WriteFile(source, []byte("fn broken( {\n"), 0644))

	status := RunCompile([]string{"--path", source})
	assert.Equal(t, CompileFailure, status)
}

func TestRunCompile_InvalidArgs(t *testing.T) {
	status := RunCompile([]string{"--hoge"})
	assert.Equal(t, InvalidArgs, status)
}
