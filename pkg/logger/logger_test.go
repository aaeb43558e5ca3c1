package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(level LogLevel, buf *bytes.Buffer) Logger {
	return NewLogger(&Config{Level: level, Output: buf, TimeFormat: "15:04:05"})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(TestConfig())
		ctx := ContextWithLogger(t.Context(), expected)

		assert.Same(t, expected, FromContext(ctx))
	})

	t.Run("Should fall back to the default logger", func(t *testing.T) {
		cases := map[string]context.Context{
			"missing":    t.Context(),
			"wrong type": context.WithValue(t.Context(), LoggerCtxKey, "not a logger"),
			"nil logger": context.WithValue(t.Context(), LoggerCtxKey, Logger(nil)),
			"nil ctx":    nil,
		}
		for name, ctx := range cases {
			t.Run(name, func(t *testing.T) {
				assert.Same(t, GetDefault(), FromContext(ctx))
			})
		}
	})
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  []string
	}{
		{DebugLevel, []string{"debug", "info", "warn", "error"}},
		{WarnLevel, []string{"warn", "error"}},
		{ErrorLevel, []string{"error"}},
		{DisabledLevel, nil},
		{LogLevel("unknown"), []string{"info", "warn", "error"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var buf bytes.Buffer
			l := bufferLogger(tt.level, &buf)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")

			out := buf.String()
			for _, name := range []string{"debug", "info", "warn", "error"} {
				if slices.Contains(tt.want, name) {
					assert.Contains(t, out, name+" message")
				} else {
					assert.NotContains(t, out, name+" message")
				}
			}
		})
	}
}

func charmLevel(l LogLevel) charmlog.Level {
	return l.ToCharmlogLevel()
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write one JSON object per line when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})

		l.Info("Normalized shorthand", "keys", 2)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
		assert.Equal(t, "Normalized shorthand", entry["msg"])
		assert.EqualValues(t, 2, entry["keys"])
	})

	t.Run("Should carry fields added with With", func(t *testing.T) {
		var buf bytes.Buffer
		l := bufferLogger(InfoLevel, &buf).With("stage", "rewrite")

		l.Info("done")

		assert.Contains(t, buf.String(), "stage")
		assert.Contains(t, buf.String(), "rewrite")
	})

	t.Run("Should use the silent test config when none is given", func(t *testing.T) {
		l, ok := NewLogger(nil).(*loggerImpl)

		require.True(t, ok)
		assert.Equal(t, charmLevel(DisabledLevel), l.charmLogger.GetLevel())
	})
}

func TestIsTestEnvironment(t *testing.T) {
	t.Run("Should detect the running test binary", func(t *testing.T) {
		assert.True(t, IsTestEnvironment())
	})

	t.Run("Should fall back to the binary name without test flags", func(t *testing.T) {
		assert.True(t, isTestBinary(false, "/tmp/go-build/logger.test"))
		assert.True(t, isTestBinary(false, `C:\tmp\logger.test.exe`))
		assert.False(t, isTestBinary(false, "/usr/local/bin/jxunxo"))
		assert.True(t, isTestBinary(true, "/usr/local/bin/jxunxo"))
	})
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  charmlog.Level
	}{
		{"debug", charmlog.DebugLevel},
		{"error", charmlog.ErrorLevel},
		{"disabled", charmLevel(DisabledLevel)},
		{"verbose", charmlog.WarnLevel},
	}
	for _, tt := range tests {
		t.Run("Should map "+tt.level, func(t *testing.T) {
			previous := GetDefault()
			t.Cleanup(func() { defaultLogger = previous })

			l := SetupLogger(tt.level, false, false)

			assert.Same(t, l, GetDefault())
			impl, ok := l.(*loggerImpl)
			require.True(t, ok)
			assert.Equal(t, tt.want, impl.charmLogger.GetLevel())
		})
	}
}
