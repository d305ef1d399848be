package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "svc", Module: "engine", Level: "info", Output: &buf})

	l.InfoContext(context.Background(), "built", "nodes", 5)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "built", rec["msg"])
	assert.Equal(t, "svc", rec["service"])
	assert.Equal(t, "engine", rec["module"])
	assert.Contains(t, rec, "timestamp")
	assert.EqualValues(t, 5, rec["nodes"])
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "svc", Module: "m", Level: "warn", Output: &buf})
	t.Cleanup(func() { SetLevel("info") })

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	SetLevel("debug")
	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := newMultiHandler(NewFromConfig(Config{Output: &a}).Handler(), NewFromConfig(Config{Output: &b}).Handler())

	slog.New(h).Info("both")

	assert.Contains(t, a.String(), "both")
	assert.Contains(t, b.String(), "both")
}

func TestMultiHandlerSkipsDisabledTarget(t *testing.T) {
	var verbose, quiet bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	l := slog.New(h).With("run", 1)

	l.Info("progress")
	l.Error("failed")

	assert.Contains(t, verbose.String(), "progress")
	assert.Contains(t, verbose.String(), "failed")
	assert.NotContains(t, quiet.String(), "progress")
	assert.Contains(t, quiet.String(), `"run":1`)
}

func TestPackageHelpersUseDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(NewFromConfig(Config{Service: "svc", Module: "cli", Level: "info", Output: &buf}))

	ctx := context.Background()
	Warn(ctx, "slow input", "ops", 3)
	done := LogDuration(ctx, "check", "input", "tree.txt")
	done()

	out := buf.String()
	assert.Contains(t, out, "slow input")
	assert.Contains(t, out, "check finished")
	assert.Contains(t, out, `"input":"tree.txt"`)
	assert.Contains(t, out, `"duration"`)
}
