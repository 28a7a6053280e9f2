package stress

import "log"

// Config holds the stress solver's tunable parameters (spec §6's scalar
// configuration lines, as they apply to stage D). Built via functional
// options, modeled on the teacher's dijkstra/types.go Option/
// DefaultOptions pair and builder/options.go's panic-on-invalid-
// construction convention.
type Config struct {
	// Iterations is the inner-loop iteration count per restart attempt.
	Iterations int

	// LearningRate is the initial per-iteration step size F; it is only
	// ever reduced across restarts, never within an attempt.
	LearningRate float64

	// Inflate is the deflating exponent (deflate = t^Inflate + 1); only
	// used when InflateEnabled is true.
	Inflate float64

	// InflateEnabled mirrors the presence of an explicit "inflate" config
	// line (spec §6): when false, non-neighbor forces attenuate by L²
	// instead of L^(2*deflate).
	InflateEnabled bool

	// RepulsionRadius caps which target distances participate in force
	// accumulation at all; pairs with L > RepulsionRadius are skipped.
	RepulsionRadius float64

	// Seed seeds the per-attempt deterministic PRNG.
	Seed int64

	// ICGuess mirrors the "ic_guess" config flag (spec §6): when true,
	// unpinned nodes that carry a correctly-dimensioned initial position
	// are seeded from it instead of drawn uniformly at random.
	ICGuess bool

	// Logger receives per-iteration error and divergence diagnostics
	// (spec §7). Defaults to log.Default().
	Logger *log.Logger
}

// Option customizes a Config.
type Option func(*Config)

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() Config {
	return Config{
		Iterations:      500,
		LearningRate:    0.1,
		Inflate:         2.0,
		InflateEnabled:  false,
		RepulsionRadius: 1e100,
		Seed:            0,
		Logger:          log.Default(),
	}
}

// WithIterations sets the inner-loop iteration count. Panics on a
// non-positive value: a zero or negative iteration count is a programmer
// error, not user graph data.
func WithIterations(n int) Option {
	if n <= 0 {
		panic("stress: WithIterations requires n > 0")
	}

	return func(c *Config) { c.Iterations = n }
}

// WithLearningRate sets the initial learning rate. Panics on a
// non-positive value.
func WithLearningRate(f float64) Option {
	if f <= 0 {
		panic("stress: WithLearningRate requires f > 0")
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

// WithRepulsionRadius sets the force-accumulation distance cap. Panics on
// a non-positive value.
func WithRepulsionRadius(r float64) Option {
	if r <= 0 {
		panic("stress: WithRepulsionRadius requires r > 0")
	}

	return func(c *Config) { c.RepulsionRadius = r }
}

// WithSeed sets the PRNG seed used to reinitialize positions on every
// restart attempt.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithICGuess enables using supplied initial positions as a warm start
// for otherwise-unpinned nodes.
func WithICGuess(enabled bool) Option {
	return func(c *Config) { c.ICGuess = enabled }
}

// WithLogger overrides the diagnostic logger. Panics on nil.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("stress: WithLogger(nil)")
	}

	return func(c *Config) { c.Logger = l }
}
