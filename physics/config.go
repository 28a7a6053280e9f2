package physics

// Config holds the physics relaxer's tunable parameters (spec §6's
// viscous_* scalar configuration lines). Built via functional options,
// mirroring stress.Config's Option/DefaultConfig pair.
type Config struct {
	// ViscousIterations is the number of kick-drift-kick steps to run.
	// The relaxer is a no-op when this is <= 0.
	ViscousIterations int

	// Timestep is the integrator's dt.
	Timestep float64

	// Damping is the integrator's implicit damping coefficient gamma.
	Damping float64
}

// Option customizes a Config.
type Option func(*Config)

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() Config {
	return Config{
		ViscousIterations: 10,
		Timestep:          0.1,
		Damping:           1.0,
	}
}

// WithViscousIterations sets the integration step count. A value <= 0
// disables the relaxer entirely, matching spec §4.E's "runs iff
// viscous_iterations > 0" guard, so unlike stress.WithIterations this
// does not panic on non-positive input.
func WithViscousIterations(n int) Option {
	return func(c *Config) { c.ViscousIterations = n }
}

// WithTimestep sets the integrator's dt. Panics on a non-positive value.
func WithTimestep(dt float64) Option {
	if dt <= 0 {
		panic("physics: WithTimestep requires dt > 0")
	}

	return func(c *Config) { c.Timestep = dt }
}

// WithDamping sets the integrator's implicit damping coefficient.
func WithDamping(gamma float64) Option {
	return func(c *Config) { c.Damping = gamma }
}
