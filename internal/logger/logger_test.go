package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopBeforeInit(t *testing.T) {
	SetLogger(nil)

	assert.NotPanics(t, func() {
		Debug("debug message")
		Info("info message")
		Named("render").Warn("warn message")
		Sync()
	})
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	defer SetLogger(nil)

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
		{level: "bogus", expected: []string{"INFO"}, excluded: []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
			require.NoError(t, InitWithFileConfig(tt.level, cfg, false))

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			logContent := string(content)

			for _, exp := range tt.expected {
				assert.Contains(t, logContent, exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, logContent, exc)
			}
		})
	}
}

func TestJSONFileOutput(t *testing.T) {
	defer SetLogger(nil)

	logFile := filepath.Join(t.TempDir(), "viewer.json")
	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	cfg.JSON = true

	require.NoError(t, InitWithFileConfig("info", cfg, false))
	Named("locator").Info("slot allocated", zap.Int("slot", 2))
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(content))), &entry), "log line is not JSON: %q", content)
	assert.Equal(t, "slot allocated", entry["msg"])
	assert.Equal(t, "locator", entry["logger"])
	assert.Equal(t, float64(2), entry["slot"])
}

func TestSetLoggerObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Warn("clip planes truncated", zap.Int("skipped", 1))
	Sugar.Debugf("frame %d", 7)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("clip planes truncated").Len())
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	assert.Equal(t, "/tmp/test.log", cfg.Path)
	assert.Equal(t, 20, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.True(t, cfg.Compress)
	assert.False(t, cfg.JSON, "console encoding by default")
}
