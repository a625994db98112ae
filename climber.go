// climber.go: hill climbing controller for the eden/main split
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import "math"

// Climber observes the hit/miss stream of a policy and, at sample-window
// boundaries, proposes a signed capacity shift between the admission
// window and the main space.
type Climber interface {
	// OnHit accumulates a hit into the current sample window.
	OnHit()

	// OnMiss accumulates a miss into the current sample window.
	OnMiss()

	// Adapt returns the number of entries of capacity to move into the
	// admission window; a negative delta moves capacity back to main.
	// ok is false while the sample window is still filling.
	Adapt() (delta float64, ok bool)
}

// sampler carries the window bookkeeping shared by climbing strategies:
// the mutable sample size, the hit rate observed at the end of the prior
// window, and the accumulating counts of the current one. Hit rates are
// percentages (0-100).
type sampler struct {
	sampleSize      int64
	previousHitRate float64

	sampleCount  int64
	hitsInSample int64
}

func (s *sampler) onHit() {
	s.hitsInSample++
	s.sampleCount++
}

func (s *sampler) onMiss() {
	s.sampleCount++
}

// sampled reports whether the observation window is full.
func (s *sampler) sampled() bool {
	return s.sampleCount > 0 && s.sampleCount >= s.sampleSize
}

// hitRate returns the current window's hit rate as a percentage.
func (s *sampler) hitRate() float64 {
	return 100 * float64(s.hitsInSample) / float64(s.sampleCount)
}

// resetSample rolls the window forward.
func (s *sampler) resetSample(hitRate float64) {
	s.previousHitRate = hitRate
	s.sampleCount = 0
	s.hitsInSample = 0
}

// SimpleClimber is a naive bang-bang hill climber: whenever a window fails
// to improve the hit rate beyond the tolerance, it reverses the direction
// of the search. Step and sample sizes decay after every window until the
// search freezes.
type SimpleClimber struct {
	sampler

	tolerance       float64
	stepDecayRate   float64
	sampleDecayRate float64

	increaseWindow bool
	stepSize       float64
}

// NewSimpleClimber derives the climber's step and sample sizes from the
// policy configuration. cfg must already be validated.
func NewSimpleClimber(cfg Config) *SimpleClimber {
	c := &SimpleClimber{
		tolerance:       100 * cfg.Tolerance,
		stepDecayRate:   cfg.StepDecayRate,
		sampleDecayRate: cfg.SampleDecayRate,
		stepSize:        float64(int(cfg.PercentPivot * float64(cfg.MaximumSize))),
	}
	c.sampleSize = int64(cfg.PercentSample * float64(cfg.MaximumSize))
	if c.sampleSize < 1 {
		c.sampleSize = 1
	}
	return c
}

// OnHit accumulates a hit into the current sample window.
func (c *SimpleClimber) OnHit() { c.onHit() }

// OnMiss accumulates a miss into the current sample window.
func (c *SimpleClimber) OnMiss() { c.onMiss() }

// Adapt computes the window's hit rate once the sample is full, obtains
// the directional step, and rolls the sample forward.
func (c *SimpleClimber) Adapt() (float64, bool) {
	if !c.sampled() {
		return 0, false
	}
	hitRate := c.hitRate()
	delta := c.adjust(hitRate)
	c.reset(hitRate)
	return delta, true
}

// adjust flips the search direction when the hit rate failed to improve
// beyond the tolerance, then steps in the current direction.
func (c *SimpleClimber) adjust(hitRate float64) float64 {
	if hitRate < c.previousHitRate+c.tolerance {
		c.increaseWindow = !c.increaseWindow
	}
	if c.increaseWindow {
		return c.stepSize
	}
	return -c.stepSize
}

// reset decays the step and sample sizes. Once either bottoms out the
// sample size is pushed to the maximum representable value: the climb has
// converged or degenerated, so no further windows complete.
func (c *SimpleClimber) reset(hitRate float64) {
	c.resetSample(hitRate)

	c.stepSize *= c.stepDecayRate
	c.sampleSize = int64(float64(c.sampleSize) * c.sampleDecayRate)
	if c.stepSize <= 0.01 || c.sampleSize <= 1 {
		c.sampleSize = math.MaxInt64
	}
}
