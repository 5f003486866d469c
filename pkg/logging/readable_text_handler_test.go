package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buffer bytes.Buffer
	return slog.New(NewReadableTextHandler(&buffer, &ReadableTextHandlerOptions{Level: level, OmitTime: true})), &buffer
}

func TestReadableTextHandler(t *testing.T) {
	assert := assert.New(t)

	logger, buffer := newTestLogger(slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("Found releases", slog.Int("count", 3))
	logger.With(slog.String("source", "device")).WithGroup("job").Warn("Slow", slog.String("id", "7"))

	assert.Equal("INFO|Found releases|count=3\nWARN|Slow|source=device, job.id=7\n", buffer.String())
}

func TestReadableTextHandlerQuoting(t *testing.T) {
	assert := assert.New(t)

	logger, buffer := newTestLogger(slog.LevelDebug)
	logger.Debug("msg", slog.String("file", "a b"), slog.String("empty", ""), slog.Group("g", slog.Bool("ok", true)))

	assert.Equal("DEBUG|msg|file=\"a b\", empty=\"\", g.ok=true\n", buffer.String())
}

func TestWithAttrsDoesNotLeak(t *testing.T) {
	assert := assert.New(t)

	logger, buffer := newTestLogger(slog.LevelInfo)
	base := logger.With(slog.String("a", "1"))
	_ = base.With(slog.String("b", "2"))
	base.Info("x")

	assert.Equal("INFO|x|a=1\n", buffer.String())
}

func TestNewLogger(t *testing.T) {
	assert := assert.New(t)

	var buffer bytes.Buffer
	assert.False(NewLogger(&buffer, false).Enabled(t.Context(), slog.LevelDebug))
	assert.True(NewLogger(&buffer, true).Enabled(t.Context(), slog.LevelDebug))
}
