package runner

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	meterName = "github.com/utkarsh5026/supera/runner"

	metricCommandsExecuted = "supera.commands.executed"
	metricResultsDelivered = "supera.results.delivered"
	metricWorkerExits      = "supera.worker.exits"
)

// telemetry records worker activity for one runner.
type telemetry struct {
	logger    *slog.Logger
	name      string
	attrs     metric.MeasurementOption
	executed  metric.Int64Counter
	delivered metric.Int64Counter
	exits     metric.Int64Counter
}

// newTelemetry creates the runner's instruments. An instrument that cannot
// be created falls back to a no-op counter.
func newTelemetry(cfg *config) *telemetry {
	meter := cfg.meterProvider.Meter(meterName)

	t := &telemetry{
		logger: cfg.logger.With(slog.String("runner", cfg.name)),
		name:   cfg.name,
		attrs:  metric.WithAttributeSet(attribute.NewSet(attribute.String("runner", cfg.name))),
	}

	var err error
	if t.executed, err = meter.Int64Counter(metricCommandsExecuted,
		metric.WithDescription("Commands executed by workers"), metric.WithUnit("{command}")); err != nil {
		t.executed = noop.Int64Counter{}
	}
	if t.delivered, err = meter.Int64Counter(metricResultsDelivered,
		metric.WithDescription("Results delivered to callers"), metric.WithUnit("{result}")); err != nil {
		t.delivered = noop.Int64Counter{}
	}
	if t.exits, err = meter.Int64Counter(metricWorkerExits,
		metric.WithDescription("Worker terminations by outcome"), metric.WithUnit("{worker}")); err != nil {
		t.exits = noop.Int64Counter{}
	}
	return t
}

func (t *telemetry) commandExecuted() {
	t.executed.Add(context.Background(), 1, t.attrs)
}

func (t *telemetry) resultDelivered() {
	t.delivered.Add(context.Background(), 1, t.attrs)
}

func (t *telemetry) workerStarted(slot int) {
	t.logger.Debug("worker started", slog.Int("slot", slot))
}

func (t *telemetry) workerExited(slot int, err error) {
	o := outcome(err)
	t.exits.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("runner", t.name),
		attribute.String("outcome", o),
	))

	switch o {
	case "stop":
		t.logger.Debug("worker stopped", slog.Int("slot", slot))
	case "panic":
		t.logger.Error("worker panicked", slog.Int("slot", slot), slog.Any("error", err))
	default:
		t.logger.Warn("worker exited with error", slog.Int("slot", slot),
			slog.String("outcome", o), slog.Any("error", err))
	}
}
