package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOptions_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.log")

	zl := NewWithOptions(Options{Level: "info", Format: "json", Output: path})
	log := NewZapAdapter(zl).WithFields(map[string]interface{}{"taskType": "process-turn"})
	log.Info("processing job", map[string]interface{}{"jobKey": 42})
	log.Debug("filtered out by level", nil)
	require.NoError(t, zl.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"processing job"`)
	assert.Contains(t, string(data), `"taskType":"process-turn"`)
	assert.NotContains(t, string(data), "filtered out by level")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "warn", parseLevel("warn").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}

func TestNoOpAndTestLoggers(t *testing.T) {
	NewNoOpLogger().WithError(assert.AnError).Warn("ignored", nil)
	NewTestLogger(t).With(map[string]interface{}{"k": "v"}).Info("visible in test output", nil)
}
