package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bridge implements sdktrace.SpanProcessor. It reports every task span in the
// familiar "Starting 'css'..." / "Finished 'css' after 12 ms" form and records
// the run in the task metrics.
type Bridge struct {
	logger  ports.Logger
	metrics *Metrics
}

// NewBridge returns a new Bridge. metrics may be nil.
func NewBridge(logger ports.Logger, metrics *Metrics) *Bridge {
	return &Bridge{logger: logger, metrics: metrics}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Info(fmt.Sprintf("Starting '%s'...", s.Name()))
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	failed := s.Status().Code == codes.Error

	if b.metrics != nil {
		b.metrics.Observe(s.Name(), elapsed, failed)
	}

	if !failed {
		b.logger.Info(fmt.Sprintf("Finished '%s' after %s", s.Name(), FormatDuration(elapsed)))
		return
	}

	desc := s.Status().Description
	if desc == "" {
		desc = "task failed"
	}
	b.logger.Error(zerr.Wrap(errors.New(desc), fmt.Sprintf("'%s' errored after %s", s.Name(), FormatDuration(elapsed))))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// FormatDuration renders elapsed time the way task timings are reported:
// milliseconds below a second, seconds with two decimals below a minute, minutes above.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2f s", d.Seconds())
	default:
		return fmt.Sprintf("%.2f min", d.Minutes())
	}
}
