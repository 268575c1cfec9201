package pipeline

import "log/slog"

// Option is a functional option for configuring Pipeline behavior.
// Options are applied during construction via [New].
type Option func(*config)

type config struct {
	logger *slog.Logger
	repair bool
}

// WithLogger attaches a structured logger to the pipeline. Every candidate
// attempt, decode failure and validation outcome is recorded at Debug
// level. By default the pipeline is silent.
//
// Example:
//
//	p, err := pipeline.New(spec,
//	    pipeline.WithLogger(slog.Default()),
//	)
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithoutRepair disables the last-resort JSON repair stage. With repair
// off, a run whose candidates all fail to decode reports the raw syntax
// errors instead of attempting to fix the text first. Repair is on by
// default.
func WithoutRepair() Option {
	return func(c *config) {
		c.repair = false
	}
}
