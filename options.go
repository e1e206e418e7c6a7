package prismal

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Random colors differ on every run
//	r := prismal.NewRenderer()
//
//	// Reproducible output
//	r := prismal.NewRenderer(prismal.WithSeed(42))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	rand   *rand.Rand
	logger *slog.Logger
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		rand:   nil, // Will be seeded from the clock if nil
		logger: nil, // Will use Logger() if nil
	}
}

// WithRand sets the source of the random fallback colors.
// Substitute a seeded generator to make random-color output reproducible.
func WithRand(r *rand.Rand) Option {
	return func(o *rendererOptions) {
		o.rand = r
	}
}

// WithSeed is shorthand for WithRand with a PCG generator seeded by seed.
func WithSeed(seed uint64) Option {
	return WithRand(NewRand(seed))
}

// WithLogger sets the logger used by the renderer instead of the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *rendererOptions) {
		o.logger = l
	}
}

// NewRand returns a PCG-backed generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func clockRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}
