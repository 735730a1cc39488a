package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"text to stdout", Config{Level: "info", Format: "text", Output: "stdout"}, false},
		{"json to stderr", Config{Level: "debug", Format: "json", Output: "stderr"}, false},
		{"levels are case-insensitive", Config{Level: "WARN", Format: "text", Output: "stdout"}, false},
		{"invalid level", Config{Level: "verbose", Format: "text", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")

	log, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("bot started", Field{Key: "username", Value: "@ypbrand_bot"})
	log.Error("send failed", assert.AnError, Field{Key: "chat_id", Value: 10})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "bot started")
	assert.Contains(t, string(data), "@ypbrand_bot")
	assert.Contains(t, string(data), "send failed")

	// Each line must be a valid JSON record.
	var record map[string]any
	line, _, _ := bytes.Cut(data, []byte("\n"))
	require.NoError(t, json.Unmarshal(line, &record))
	assert.Equal(t, "bot started", record["msg"])
	assert.Equal(t, "@ypbrand_bot", record["username"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")

	log, err := New(Config{Level: "warn", Format: "text", Output: path})
	require.NoError(t, err)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "debug message")
	assert.NotContains(t, string(data), "info message")
	assert.Contains(t, string(data), "warn message")
}

func TestLogger_With(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")

	log, err := New(Config{Level: "info", Format: "text", Output: path})
	require.NoError(t, err)

	log.With(Field{Key: "component", Value: "poller"}).Info("started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=poller")
}

func TestParseLevel(t *testing.T) {
	_, ok := parseLevel("info")
	assert.True(t, ok)

	_, ok = parseLevel("ERROR")
	assert.True(t, ok)

	_, ok = parseLevel("trace")
	assert.False(t, ok)
}
