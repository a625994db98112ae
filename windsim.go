// windsim.go: shared constants and defaults
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

const (
	// Version of the windsim library
	Version = "v0.1.0-dev"

	// DefaultMaximumSize is the default policy capacity used by
	// DefaultConfig and the replay driver.
	DefaultMaximumSize = 512

	// DefaultPercentMain is the fraction of the capacity given to the
	// main space; the remainder forms the admission window.
	DefaultPercentMain = 0.99

	// DefaultPercentMainProtected is the fraction of the main space
	// reserved for the protected region of the two-tier engine.
	DefaultPercentMainProtected = 0.80

	// DefaultPercentFastPath sizes the reorder-skip threshold for the
	// hottest protected entries.
	DefaultPercentFastPath = 0.04

	// DefaultLevels is the number of main-space tiers in the N-tier engine.
	DefaultLevels = 4

	// Hill climber defaults.
	DefaultPercentPivot    = 0.0625
	DefaultPercentSample   = 0.10
	DefaultStepDecayRate   = 0.98
	DefaultSampleDecayRate = 1.0
)
