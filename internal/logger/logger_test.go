package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	l, err := New(Config{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.With(String("campaign", "wra")).Info("loaded", Int("rows", 3), Error(errors.New("boom")))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.Contains(out, `"msg":"loaded"`), out)
	assert.Contains(t, out, `"campaign":"wra"`)
	assert.Contains(t, out, `"rows":3`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	l, err := New(Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Warn("shown")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "shown")
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("nothing")
	assert.Same(t, l, l.With(String("k", "v")))
	assert.NoError(t, l.Sync())
}
