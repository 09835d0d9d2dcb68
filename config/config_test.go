package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nag.yaml")
	content := `
debug: true
debug_compiler: false
ast: true
paths:
  - src
  - extra.nag
paths_recursive: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.False(t, cfg.DebugCompiler)
	assert.True(t, cfg.AST)
	assert.Equal(t, []string{"src", "extra.nag"}, cfg.Paths)
	assert.True(t, cfg.PathsRecursive)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
