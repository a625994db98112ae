// stats.go: outcome accounting for policy replays
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

// PolicyStats counts the outcomes of one policy replay. It implements
// StatsCollector and can mirror every event to a secondary collector,
// e.g. the Prometheus adapter in metrics/prom.
//
// Replays are single-threaded, so the counters need no synchronization.
type PolicyStats struct {
	name   string
	mirror StatsCollector

	operations uint64
	hits       uint64
	misses     uint64
	evictions  uint64
}

// NewPolicyStats creates an empty collector for the named policy.
func NewPolicyStats(name string) *PolicyStats {
	return &PolicyStats{name: name}
}

// WithMirror forwards every recorded event to c as well and returns the
// receiver for chaining.
func (s *PolicyStats) WithMirror(c StatsCollector) *PolicyStats {
	s.mirror = c
	return s
}

// RecordOperation counts one processed access.
func (s *PolicyStats) RecordOperation() {
	s.operations++
	if s.mirror != nil {
		s.mirror.RecordOperation()
	}
}

// RecordHit counts an access that found its key resident.
func (s *PolicyStats) RecordHit() {
	s.hits++
	if s.mirror != nil {
		s.mirror.RecordHit()
	}
}

// RecordMiss counts an access that missed.
func (s *PolicyStats) RecordMiss() {
	s.misses++
	if s.mirror != nil {
		s.mirror.RecordMiss()
	}
}

// RecordEviction counts one evicted entry.
func (s *PolicyStats) RecordEviction() {
	s.evictions++
	if s.mirror != nil {
		s.mirror.RecordEviction()
	}
}

// Name returns the policy name this collector belongs to.
func (s *PolicyStats) Name() string { return s.name }

// Operations returns the number of processed accesses.
func (s *PolicyStats) Operations() uint64 { return s.operations }

// Hits returns the number of hits.
func (s *PolicyStats) Hits() uint64 { return s.hits }

// Misses returns the number of misses.
func (s *PolicyStats) Misses() uint64 { return s.misses }

// Evictions returns the number of evicted entries.
func (s *PolicyStats) Evictions() uint64 { return s.evictions }

// HitRatio returns the hit ratio as a percentage (0-100).
// Returns 0.0 before any access has been recorded.
func (s *PolicyStats) HitRatio() float64 {
	total := s.hits + s.misses
	if total == 0 {
		return 0
	}
	return float64(s.hits) / float64(total) * 100
}
