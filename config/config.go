// Package config holds the top-level scalar configuration for one layout
// run: the parsed (or CLI-overridden) values behind spec.md §6's free-form
// key/value configuration lines, plus the output dimension. It is the
// single place that groups the per-stage Config values (stress, physics,
// component separation) that the rest of the engine consumes.
package config

import "log"

// DefaultSeparateFactor is spec §6's default for the "separate" scalar
// line.
const DefaultSeparateFactor = 1.5

// Config is the fully-resolved set of knobs for one Layout call. Zero
// value is meaningless; build one via New.
type Config struct {
	// Dim is the embedding dimension, 2 or 3 (spec §6's first input line).
	Dim int

	// Seed feeds the stress solver's per-attempt PRNG.
	Seed int64

	// Iterations is the stress solver's inner-loop iteration count.
	Iterations int

	// LearningRate is the stress solver's initial step size.
	LearningRate float64

	// Inflate is the stress solver's deflating exponent.
	Inflate float64

	// InflateEnabled mirrors the presence of an explicit "inflate" line.
	InflateEnabled bool

	// RepulsionRadius caps which target distances participate in the
	// stress solver's force accumulation.
	RepulsionRadius float64

	// SeparateFactor scales the cross-component target distance (spec
	// §4.C). A value <= apsp/separate.MinFactor disables separation.
	SeparateFactor float64

	// ICGuess enables warm-starting unpinned nodes from their supplied
	// initial positions.
	ICGuess bool

	// ViscousIterations is the physics relaxer's integration step count.
	// <= 0 disables the relaxer entirely.
	ViscousIterations int

	// ViscousTimestep is the physics relaxer's integrator dt.
	ViscousTimestep float64

	// ViscousDamping is the physics relaxer's implicit damping gamma.
	ViscousDamping float64

	// Logger receives per-stage diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

// Option customizes a Config.
type Option func(*Config)

// New builds a Config from spec §6's defaults, then applies opts.
func New(opts ...Option) Config {
	cfg := Config{
		Dim:               2,
		Seed:              0,
		Iterations:        500,
		LearningRate:      0.1,
		Inflate:           2.0,
		InflateEnabled:    false,
		RepulsionRadius:   1e100,
		SeparateFactor:    DefaultSeparateFactor,
		ICGuess:           false,
		ViscousIterations: 10,
		ViscousTimestep:   0.1,
		ViscousDamping:    1.0,
		Logger:            log.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithDim sets the embedding dimension. Panics outside {2,3}.
func WithDim(dim int) Option {
	if dim != 2 && dim != 3 {
		panic("config: WithDim requires dim in {2,3}")
	}

	return func(c *Config) { c.Dim = dim }
}

// WithSeed sets the PRNG seed.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithIterations sets the stress solver's iteration count. Panics on a
// non-positive value.
func WithIterations(n int) Option {
	if n <= 0 {
		panic("config: WithIterations requires n > 0")
	}

	return func(c *Config) { c.Iterations = n }
}

// WithLearningRate sets the stress solver's initial learning rate.
// Panics on a non-positive value.
func WithLearningRate(f float64) Option {
	if f <= 0 {
		panic("config: WithLearningRate requires f > 0")
	}

	return func(c *Config) { c.LearningRate = f }
}

// WithInflate enables the inflation regime with the given exponent.
func WithInflate(exp float64) Option {
	return func(c *Config) {
		c.Inflate = exp
		c.InflateEnabled = true
	}
}

// WithRepulsionRadius sets the stress solver's force-accumulation
// distance cap. Panics on a non-positive value.
func WithRepulsionRadius(r float64) Option {
	if r <= 0 {
		panic("config: WithRepulsionRadius requires r > 0")
	}

	return func(c *Config) { c.RepulsionRadius = r }
}

// WithSeparateFactor sets the component-separation scale factor.
func WithSeparateFactor(f float64) Option {
	return func(c *Config) { c.SeparateFactor = f }
}

// WithICGuess enables using supplied initial positions as a warm start
// for otherwise-unpinned nodes.
func WithICGuess(enabled bool) Option {
	return func(c *Config) { c.ICGuess = enabled }
}

// WithViscousIterations sets the physics relaxer's integration step
// count. A value <= 0 disables the relaxer.
func WithViscousIterations(n int) Option {
	return func(c *Config) { c.ViscousIterations = n }
}

// WithViscousTimestep sets the physics relaxer's dt. Panics on a
// non-positive value.
func WithViscousTimestep(dt float64) Option {
	if dt <= 0 {
		panic("config: WithViscousTimestep requires dt > 0")
	}

	return func(c *Config) { c.ViscousTimestep = dt }
}

// WithViscousDamping sets the physics relaxer's implicit damping gamma.
func WithViscousDamping(gamma float64) Option {
	return func(c *Config) { c.ViscousDamping = gamma }
}

// WithLogger overrides the diagnostic logger. Panics on nil.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("config: WithLogger(nil)")
	}

	return func(c *Config) { c.Logger = l }
}
