package build

import (
	"log/slog"
	"runtime"

	"github.com/syssam/mapping"
)

// Config holds the builder configuration.
type Config struct {
	// Logger receives resolution decisions at debug level and ambiguous
	// inference at warn level.
	Logger *slog.Logger
	// Workers bounds the goroutines of the verification pass.
	Workers int
	// StrictCascade rejects unknown cascade keywords instead of dropping
	// them.
	StrictCascade bool
	// Inference enables inference of missing association targets and
	// referenced properties.
	Inference bool
}

// Option configures the mapping builder.
type Option func(*Config) error

// WithLogger sets the builder logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return mapping.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of goroutines used to verify entities.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return mapping.NewConfigError("Workers", n, "workers must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithStrictCascade makes unknown cascade keywords an error.
func WithStrictCascade() Option {
	return func(c *Config) error {
		c.StrictCascade = true
		return nil
	}
}

// WithInference enables or disables inference. When enabled, an
// association without a type or target maps to the singular camel-cased
// form of its name (books → Book), and an association without a
// referenced property picks the only compatible association on its target
// pointing back to the owner.
func WithInference(enabled bool) Option {
	return func(c *Config) error {
		c.Inference = enabled
		return nil
	}
}

func defaultConfig() *Config {
	return &Config{
		Logger:  slog.Default(),
		Workers: runtime.GOMAXPROCS(0),
	}
}
