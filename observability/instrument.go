package observability

import (
	"log/slog"
	"time"

	"github.com/obrok/lens"
	"github.com/obrok/lens/logging"
)

// Option configures Instrument.
type Option func(*instrumented)

// WithMetrics records every evaluation in m.
func WithMetrics(m *Metrics) Option {
	return func(i *instrumented) {
		i.metrics = m
	}
}

// WithLogger logs every evaluation to logger: successes at debug level,
// failures at warn.
func WithLogger(logger *slog.Logger) Option {
	return func(i *instrumented) {
		i.logger = logger
	}
}

type instrumented struct {
	lens    lens.Lens
	name    string
	metrics *Metrics
	logger  *slog.Logger
}

// Instrument wraps l so that its evaluations are measured and logged under
// name. The wrapped lens focuses and writes exactly as l does.
func Instrument(l lens.Lens, name string, opts ...Option) lens.Lens {
	i := &instrumented{lens: l, name: name, logger: logging.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *instrumented) Focus(data any, fn lens.Transform) ([]any, any, error) {
	start := time.Now()
	res, updated, err := i.lens.Focus(data, fn)
	elapsed := time.Since(start)

	if i.metrics != nil {
		i.metrics.RecordEvaluation(i.name, len(res), err, elapsed)
	}
	if err != nil {
		i.logger.Warn("lens evaluation failed",
			"lens", i.name,
			"shape", lens.ShapeOf(data).String(),
			"duration", elapsed,
			logging.Err(err),
		)
		return nil, nil, err
	}
	i.logger.Debug("lens evaluated",
		"lens", i.name,
		"foci", len(res),
		"duration", elapsed,
	)
	return res, updated, nil
}

func (i *instrumented) String() string {
	return i.name
}
