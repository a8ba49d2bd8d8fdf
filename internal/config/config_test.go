package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyFieldsPresentInFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mgolc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output = "./out.c"`+"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./out.c", cfg.Output)
	assert.Equal(t, Default().ActionTable, cfg.ActionTable)
}

func TestLoadMergesServerFieldsIndividually(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mgolc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
admin_key_hash = "bcryptedhash"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bcryptedhash", cfg.Server.AdminKeyHash)
	assert.Equal(t, Default().Server.Listen, cfg.Server.Listen)
}
