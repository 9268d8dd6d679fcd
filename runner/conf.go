package runner

import (
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a runner.
type Option func(*config)

type config struct {
	workerCount   int
	name          string
	logger        *slog.Logger
	lockOSThread  bool
	pinCPU        bool
	rateLimiter   *rate.Limiter
	beforeExecute func(slot int)
	onWorkerExit  func(slot int, err error)
	meterProvider metric.MeterProvider
}

func createConfig(opts ...Option) *config {
	cfg := &config{
		workerCount: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.meterProvider == nil {
		cfg.meterProvider = otel.GetMeterProvider()
	}
	return cfg
}

// WithWorkerCount sets the number of workers of a Pool runner.
// If not specified, defaults to runtime.GOMAXPROCS(0). Single runners
// always have exactly one worker and ignore this option.
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithName sets the name used in log records and metric attributes.
// If not specified, the runner ID is used.
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithLogger sets the logger for worker lifecycle events.
// If not specified, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithDedicatedThreads locks every worker goroutine to its own OS thread for
// its whole lifetime.
func WithDedicatedThreads() Option {
	return func(cfg *config) {
		cfg.lockOSThread = true
	}
}

// WithCPUAffinity locks every worker to an OS thread and pins worker i to
// CPU core i % NumCPU. Pinning is supported on Linux and Windows; elsewhere
// workers are only locked.
func WithCPUAffinity() Option {
	return func(cfg *config) {
		cfg.lockOSThread = true
		cfg.pinCPU = true
	}
}

// WithRateLimit limits how fast commands are executed across all workers.
// commandsPerSecond specifies the sustained rate and burst the number of
// commands that may run back to back. Stop commands count too.
//
// Example:
//
//	WithRateLimit(100, 10) // 100 commands/sec with a burst of 10
func WithRateLimit(commandsPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if commandsPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(commandsPerSecond), burst)
		}
	}
}

// WithBeforeExecute registers a hook called on the worker goroutine right
// before each command runs.
func WithBeforeExecute(fn func(slot int)) Option {
	return func(cfg *config) {
		cfg.beforeExecute = fn
	}
}

// WithOnWorkerExit registers a hook called on the worker goroutine when the
// worker terminates. err is nil for a Stop exit.
func WithOnWorkerExit(fn func(slot int, err error)) Option {
	return func(cfg *config) {
		cfg.onWorkerExit = fn
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider.
// If not specified, otel.GetMeterProvider() is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *config) {
		if mp != nil {
			cfg.meterProvider = mp
		}
	}
}
