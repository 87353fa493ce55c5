package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sitepipe/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "message\n"},
		{name: "warn", level: slog.LevelWarn, want: "! message\n"},
		{name: "error", level: slog.LevelError, want: "✗ message\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, "message")

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_LevelVar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	level := &slog.LevelVar{}
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: level})

	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	level.Set(slog.LevelDebug)
	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
}

func TestPrettyHandler_AttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	var h slog.Handler = logger.NewPrettyHandler(buf, nil)
	h = h.WithAttrs([]slog.Attr{slog.String("task", "css")})
	h = h.WithGroup("watch")

	slog.New(h).Info("changed", "path", "src/css/main.css")
	assert.Equal(t, "changed watch.task=css watch.path=src/css/main.css\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	h := logger.NewPrettyHandler(failingWriter{}, nil)
	err := h.Handle(t.Context(), slog.NewRecord(time.Time{}, slog.LevelInfo, "x", 0))
	assert.Error(t, err)
}
