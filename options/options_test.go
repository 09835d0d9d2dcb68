package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with placeholder content under dir.
func writeFile(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("fn f() {}\n"), 0644))
	return path
}

func TestParse_Switches(t *testing.T) {
	opts, err := Parse([]string{"--debug", "--debug-compiler", "--ast"})
	require.NoError(t, err)

	assert.True(t, opts.IsDebug)
	assert.True(t, opts.IsCompilerDebug)
	assert.True(t, opts.IsOutputAST)
	assert.Empty(t, opts.TargetList)
}

func TestParse_UnknownOption(t *testing.T) {
	_, err := Parse([]string{"--hoge"})
	assert.Error(t, err)
}

func TestParse_PathTakesFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.nag")
	second := writeFile(t, dir, "b.nag")
	writeFile(t, dir, "ignored.txt")

	opts, err := Parse([]string{"--path", first, second, "--debug"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{first, second}, opts.TargetList)
	assert.True(t, opts.IsDebug)
}

func TestParse_PathStopsAtNonExistingArgument(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, dir, "a.nag")

	// The positional run ends at the first argument that is not an
	// existing path; --ast must still be recognized after it.
	opts, err := Parse([]string{"--path", existing, "--ast"})
	require.NoError(t, err)
	assert.Equal(t, []string{existing}, opts.TargetList)
	assert.True(t, opts.IsOutputAST)
}

func TestParse_PathDirectoryIsNotRecursive(t *testing.T) {
	dir := t.TempDir()
	direct := writeFile(t, dir, "a.nag")
	writeFile(t, dir, "sub/nested.nag")

	opts, err := Parse([]string{"--path", dir})
	require.NoError(t, err)
	assert.Equal(t, []string{direct}, opts.TargetList)
}

func TestParse_PathRecursiveDescends(t *testing.T) {
	dir := t.TempDir()
	direct := writeFile(t, dir, "a.nag")
	nested := writeFile(t, dir, "sub/deeper/nested.nag")

	opts, err := Parse([]string{"--path-recursive", dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{direct, nested}, opts.TargetList)
}

func TestASTOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("x", "y.ast"), ASTOutputPath(filepath.Join("x", "y.nag")))
}
