// interfaces.go: public interfaces for windsim
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import "github.com/agilira/go-timecache"

// Policy is the per-access entry point of one simulated eviction policy.
// A policy replays a single trace as one sequential stream of Record calls;
// implementations are not safe for concurrent use. Replay different
// policies on different goroutines, never the same instance.
type Policy interface {
	// Record processes one access to key, updating residency state and
	// outcome counters. It panics with a WINDSIM_INVARIANT_VIOLATION error
	// if the internal region bookkeeping is corrupted, since continuing
	// would invalidate all prior results.
	Record(key uint64)

	// Finished recomputes the true region populations by full scan and
	// checks them against the maintained counters. It is invoked once,
	// after the trace is exhausted.
	Finished() error

	// Stats returns the collector counting this policy's outcomes.
	Stats() *PolicyStats

	// Name identifies the policy in reports.
	Name() string
}

// Admittor approximates historical access frequency and decides whether a
// candidate promoted out of the admission window is worth an eviction.
type Admittor interface {
	// Record notes one access to key.
	Record(key uint64)

	// Admit reports whether candidate should displace victim: true evicts
	// the victim, false evicts the candidate.
	Admit(candidate, victim uint64) bool
}

// StatsCollector receives the outcome events of a policy replay. Each
// method is called exactly once per corresponding event.
type StatsCollector interface {
	// RecordOperation counts one processed access.
	RecordOperation()

	// RecordHit counts an access that found its key resident.
	RecordHit()

	// RecordMiss counts an access that missed.
	RecordMiss()

	// RecordEviction counts one evicted entry.
	RecordEviction()
}

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

// Debug does nothing (no-op implementation).
func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

// Info does nothing (no-op implementation).
func (NoOpLogger) Info(msg string, keyvals ...interface{}) {}

// Warn does nothing (no-op implementation).
func (NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// Error does nothing (no-op implementation).
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time for replay timing. The interface
// allows injecting optimized or fake clocks.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	Now() int64
}

// SystemTimeProvider is the default provider, backed by go-timecache for
// cheap repeated reads during long replays.
type SystemTimeProvider struct{}

// Now returns the cached system time in nanoseconds.
func (SystemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
