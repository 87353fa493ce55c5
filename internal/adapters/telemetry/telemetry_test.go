package telemetry_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sitepipe/internal/adapters/telemetry"
	"go.trai.ch/sitepipe/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0 ms"},
		{in: 12 * time.Millisecond, want: "12 ms"},
		{in: 999 * time.Millisecond, want: "999 ms"},
		{in: 1500 * time.Millisecond, want: "1.50 s"},
		{in: 90 * time.Second, want: "1.50 min"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, telemetry.FormatDuration(tt.in))
		})
	}
}

func TestBridge_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	reg := prometheus.NewRegistry()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log, telemetry.NewMetrics(reg))))

	var messages []string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		messages = append(messages, msg)
	}).Times(2)

	_, span := tp.Tracer("test").Start(t.Context(), "css")
	span.End()

	require.Len(t, messages, 2)
	assert.Equal(t, "Starting 'css'...", messages[0])
	assert.True(t, strings.HasPrefix(messages[1], "Finished 'css' after "), messages[1])
	assert.True(t, strings.HasSuffix(messages[1], " ms"), messages[1])

	assert.InDelta(t, 1.0, runs(t, reg, "css", telemetry.OutcomeSuccess), 0)
}

func TestBridge_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	reg := prometheus.NewRegistry()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log, telemetry.NewMetrics(reg))))

	log.EXPECT().Info("Starting 'hugo'...")
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), "'hugo' errored after")
		assert.Contains(t, err.Error(), "Hugo build failed")
	})

	_, span := tp.Tracer("test").Start(t.Context(), "hugo")
	span.SetStatus(codes.Error, "Hugo build failed")
	span.End()

	assert.InDelta(t, 1.0, runs(t, reg, "hugo", telemetry.OutcomeFailure), 0)
}

// runs reads one series of the task run counter.
func runs(t *testing.T, reg *prometheus.Registry, task, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != "sitepipe_task_runs_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["task"] == task && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("no series for %s/%s", task, outcome)
	return 0
}

func TestOTelTracer_RecordError(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("Starting 'svg'...")
	log.EXPECT().Error(gomock.Any())

	provider := telemetry.NewProvider(log)
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	_, span := provider.Tracer().Start(t.Context(), "svg")
	span.SetAttribute("sitepipe.task", "svg")
	span.SetAttribute("sitepipe.attempt", 1)
	span.SetAttribute("sitepipe.paths", []string{"a", "b"})
	span.RecordError(errors.New("sprite partial is missing inject markers"))
	span.End()

	count, err := testutil.GatherAndCount(provider.Registry(), "sitepipe_task_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
