package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	calls []string
}

func (l *recordingLogger) Log(level, message string, fields map[string]interface{}) {
	l.calls = append(l.calls, level+": "+message)
}

func TestLoggerFromContextReturnsAttachedLogger(t *testing.T) {
	rl := &recordingLogger{}
	ctx := WithLogger(context.Background(), rl)

	got := LoggerFromContext(ctx)
	got.Log("INFO", "hello", nil)

	assert.Same(t, rl, got)
	assert.Equal(t, []string{"INFO: hello"}, rl.calls)
}

func TestLoggerFromContextReturnsNoOpWhenUnset(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotPanics(t, func() {
		logger.Log("INFO", "no listener", map[string]interface{}{"k": "v"})
	})
}
