package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/treeops/config"
	"github.com/wyfcoding/treeops/logging"
)

func TestInitializeWithDefaults(t *testing.T) {
	b := New("treeops", "1.0.0")
	require.NoError(t, b.Initialize(filepath.Join(t.TempDir(), "absent.toml")))

	require.NotNil(t, b.Config)
	require.NotNil(t, b.Logger)
	assert.Equal(t, "1.0.0", b.Config.Version)
	assert.Equal(t, config.PathModeInclusionExclusion, b.Config.Engine.PathMode)

	stop := b.SetupTracing()
	stop()

	em, stopMetrics := b.SetupMetrics("")
	defer stopMetrics()
	assert.NotNil(t, em)
}

func TestReloadLoggerSwitchesOutput(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	b := New("treeops", "1.0.0")
	require.NoError(t, b.Initialize(filepath.Join(t.TempDir(), "absent.toml")))
	initial := logging.Default()

	// 只改级别不重建，级别由 config 包直接调整。
	same := *b.Config
	same.Log.Level = "debug"
	b.reloadLogger(&same)
	assert.Same(t, initial, logging.Default())

	next := *b.Config
	next.Log.File = filepath.Join(t.TempDir(), "treeops.log")
	b.reloadLogger(&next)
	require.NotSame(t, initial, logging.Default())

	logging.Info(context.Background(), "after reload")
	data, err := os.ReadFile(next.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "log output reconfigured")
	assert.Contains(t, string(data), "after reload")
}
