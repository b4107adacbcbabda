package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   zapcore.Level
	}{
		{"debug console", "debug", "console", zapcore.DebugLevel},
		{"warn json", "warn", "json", zapcore.WarnLevel},
		{"error json", "error", "json", zapcore.ErrorLevel},
		{"unknown level defaults to info", "verbose", "console", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}
