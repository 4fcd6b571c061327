package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   LogLevel
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{LogLevelError, zapcore.ErrorLevel, zapcore.WarnLevel},
		{LogLevelWarn, zapcore.WarnLevel, zapcore.InfoLevel},
		{LogLevelInfo, zapcore.InfoLevel, zapcore.DebugLevel},
		{LogLevel(42), zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		core := NewLogger(tt.level).Core()
		assert.True(t, core.Enabled(tt.enabled), "level %d should log %s", tt.level, tt.enabled)
		assert.False(t, core.Enabled(tt.muted), "level %d should not log %s", tt.level, tt.muted)
	}

	assert.True(t, NewLogger(LogLevelDebug).Core().Enabled(zapcore.DebugLevel))
}
