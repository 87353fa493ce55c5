package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitepipe/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name string
		log  func(*logger.Logger)
		want string
	}{
		{name: "info", log: func(l *logger.Logger) { l.Info("Starting 'css'...") }, want: "Starting 'css'...\n"},
		{name: "warn", log: func(l *logger.Logger) { l.Warn("slow build") }, want: "! slow build\n"},
		{name: "debug filtered", log: func(l *logger.Logger) { l.Debug("hidden") }, want: ""},
		{name: "multiline", log: func(l *logger.Logger) { l.Info("line1\nline2") }, want: "line1\nline2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_SetDebug(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetDebug(true)
	lg.Debug("watching site")
	assert.Equal(t, "● watching site\n", buf.String())

	buf.Reset()
	lg.SetDebug(false)
	lg.Debug("watching site")
	assert.Empty(t, buf.String())
}

func TestLogger_SetDebug_SurvivesOutputChange(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetDebug(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Debug("still visible")
	assert.Contains(t, buf.String(), "still visible")
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	inner := zerr.Wrap(errors.New("exit status 255"), "Hugo build failed")
	lg.Error(zerr.Wrap(inner, "task hugo failed"))

	want := "✗ Error: task hugo failed\n\n  Caused by:\n    → Hugo build failed\n    → exit status 255\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("plain failure"))
	assert.Equal(t, "✗ Error: plain failure\n", buf.String())
}

func TestLogger_Error_Joined(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.Join(errors.New("css failed"), errors.New("svg failed")))
	assert.Equal(t, "✗ Error: css failed\n\n  Caused by:\n    → svg failed\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("Finished 'js' after 12 ms")
	lg.Error(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "Finished 'js' after 12 ms", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "boom", failure["error"])
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetJSON(true)
	lg.Info("json")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("pretty")
	assert.Equal(t, "pretty\n", buf.String())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%3 == 0 {
				lg.SetJSON(i%2 == 0)
			}
			lg.Info("message")
			lg.Error(errors.New("error"))
		}()
	}
	wg.Wait()
}
