// config.go: configuration for windsim policies
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

// Config holds the configuration surface shared by all policies. A zero
// fraction means "use the default"; out-of-range values are rejected at
// construction, before any access is processed.
type Config struct {
	// MaximumSize is the number of entries a policy may hold resident.
	// Must be > 0; there is no default.
	MaximumSize int

	// PercentMain is the fraction of MaximumSize given to the main space.
	// The remainder forms the admission window (eden).
	PercentMain float64

	// PercentMainProtected is the fraction of the main space reserved for
	// the protected region of the two-tier engine.
	PercentMainProtected float64

	// PercentFastPath sizes the reorder-skip threshold for protected hits:
	// entries touched within the last floor(maxMain*PercentFastPath)
	// reorders are not moved again.
	PercentFastPath float64

	// Levels is the number of main-space tiers in the N-tier engine.
	// Default: DefaultLevels.
	Levels int

	// PercentPivot sizes the hill climber's initial step as a fraction of
	// MaximumSize.
	PercentPivot float64

	// PercentSample sizes the hill climber's observation window as a
	// fraction of MaximumSize.
	PercentSample float64

	// Tolerance is the hit-rate improvement (as a fraction) below which the
	// climber considers a window stalled and reverses direction.
	Tolerance float64

	// StepDecayRate and SampleDecayRate shrink the climber's step and
	// sample sizes after every window. Must be in (0,1].
	StepDecayRate   float64
	SampleDecayRate float64

	// Admittor is the admission filter consulted on candidate-vs-victim
	// decisions. If nil, a TinyLFU sketch sized to MaximumSize is used.
	Admittor Admittor

	// Stats receives the policy's outcome events. If nil, a fresh collector
	// named after the policy is created.
	Stats *PolicyStats

	// Logger is used for debugging and replay diagnostics.
	// If nil, NoOpLogger is used.
	Logger Logger
}

// DefaultConfig returns a configuration with the package defaults applied.
func DefaultConfig() Config {
	return Config{
		MaximumSize:          DefaultMaximumSize,
		PercentMain:          DefaultPercentMain,
		PercentMainProtected: DefaultPercentMainProtected,
		PercentFastPath:      DefaultPercentFastPath,
		Levels:               DefaultLevels,
		PercentPivot:         DefaultPercentPivot,
		PercentSample:        DefaultPercentSample,
		StepDecayRate:        DefaultStepDecayRate,
		SampleDecayRate:      DefaultSampleDecayRate,
		Logger:               NoOpLogger{},
	}
}

// Validate checks the configuration, applying defaults for unset values
// and rejecting out-of-range ones. Policy constructors call it before
// touching any setting; a non-nil return is a configuration error and the
// policy is not built.
func (c *Config) Validate() error {
	if c.MaximumSize <= 0 {
		return NewErrInvalidMaxSize(c.MaximumSize)
	}

	if c.PercentMain == 0 {
		c.PercentMain = DefaultPercentMain
	}
	if c.PercentMainProtected == 0 {
		c.PercentMainProtected = DefaultPercentMainProtected
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"percent_main", c.PercentMain},
		{"percent_main_protected", c.PercentMainProtected},
		{"percent_fast_path", c.PercentFastPath},
		{"percent_pivot", c.PercentPivot},
		{"percent_sample", c.PercentSample},
		{"tolerance", c.Tolerance},
	} {
		if p.value < 0 || p.value > 1 {
			return NewErrInvalidPercent(p.name, p.value)
		}
	}

	if c.Levels == 0 {
		c.Levels = DefaultLevels
	}
	if c.Levels < 1 {
		return NewErrInvalidLevels(c.Levels)
	}

	if c.PercentPivot == 0 {
		c.PercentPivot = DefaultPercentPivot
	}
	if c.PercentSample == 0 {
		c.PercentSample = DefaultPercentSample
	}
	if c.StepDecayRate == 0 {
		c.StepDecayRate = DefaultStepDecayRate
	}
	if c.SampleDecayRate == 0 {
		c.SampleDecayRate = DefaultSampleDecayRate
	}
	if c.StepDecayRate < 0 || c.StepDecayRate > 1 {
		return NewErrInvalidDecay("step_decay_rate", c.StepDecayRate)
	}
	if c.SampleDecayRate < 0 || c.SampleDecayRate > 1 {
		return NewErrInvalidDecay("sample_decay_rate", c.SampleDecayRate)
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	return nil
}

// admittor returns the configured admission filter, or a TinyLFU sketch
// sized to the policy capacity.
func (c *Config) admittor() Admittor {
	if c.Admittor != nil {
		return c.Admittor
	}
	return NewTinyLFU(c.MaximumSize)
}

// stats returns the configured collector, or a fresh one for name.
func (c *Config) stats(name string) *PolicyStats {
	if c.Stats != nil {
		return c.Stats
	}
	return NewPolicyStats(name)
}
