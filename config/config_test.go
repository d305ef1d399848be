package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treeops.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load(filepath.Join(t.TempDir(), "absent.toml"), cfg))

	assert.Equal(t, PathModeInclusionExclusion, cfg.Engine.PathMode)
	assert.True(t, cfg.Engine.Validate)
	assert.Equal(t, 1<<20, cfg.Engine.MaxNodes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
version = "1.2.0"

[log]
level = "debug"

[engine]
max_nodes = 500
path_mode = "sum"
validate = false
`)
	cfg := &Config{}
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500, cfg.Engine.MaxNodes)
	assert.Equal(t, PathModeSum, cfg.Engine.PathMode)
	assert.False(t, cfg.Engine.Validate)
}

func TestLoadRejectsUnknownPathMode(t *testing.T) {
	path := writeConfig(t, `
[engine]
path_mode = "max"
`)
	err := Load(path, &Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TREEOPS_ENGINE_MAX_NODES", "42")
	cfg := &Config{}
	require.NoError(t, Load("", cfg))
	assert.Equal(t, 42, cfg.Engine.MaxNodes)
}

func TestMask(t *testing.T) {
	m := map[string]any{
		"Tracing": map[string]any{"OTLPEndpoint": "collector:4317", "Enabled": true},
		"Version": "dev",
	}
	mask(m)
	assert.Equal(t, "******", m["Tracing"].(map[string]any)["OTLPEndpoint"])
	assert.Equal(t, "dev", m["Version"])
}
