// sketch_test.go: unit tests for the TinyLFU admission filter
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import "testing"

func newSketch(t *testing.T, maximumSize int) *tinyLFU {
	t.Helper()
	s, ok := NewTinyLFU(maximumSize).(*tinyLFU)
	if !ok {
		t.Fatal("NewTinyLFU should build the sketch-backed filter")
	}
	return s
}

func TestTinyLFU_EstimateTracksRecords(t *testing.T) {
	s := newSketch(t, 64)

	if got := s.estimate(123); got != 0 {
		t.Errorf("fresh sketch estimates %d, want 0", got)
	}
	for i := 0; i < 5; i++ {
		s.Record(123)
	}
	if got := s.estimate(123); got != 5 {
		t.Errorf("estimate=%d after 5 records, want 5", got)
	}
}

func TestTinyLFU_CountersSaturate(t *testing.T) {
	s := newSketch(t, 64)
	for i := 0; i < 40; i++ {
		s.Record(9)
	}
	if got := s.estimate(9); got != 15 {
		t.Errorf("estimate=%d, 4-bit counters must saturate at 15", got)
	}
}

func TestTinyLFU_Admit(t *testing.T) {
	s := newSketch(t, 64)
	const hot, cold = 700, 701
	for i := 0; i < 3; i++ {
		s.Record(hot)
	}
	s.Record(cold)

	if !s.Admit(hot, cold) {
		t.Error("the more frequent candidate must be admitted")
	}
	if s.Admit(cold, hot) {
		t.Error("the less frequent candidate must be rejected")
	}
	// Equal estimates keep the victim resident.
	if s.Admit(hot, hot) {
		t.Error("a tie must not displace the victim")
	}
}

func TestTinyLFU_ResetHalvesCounters(t *testing.T) {
	s := newSketch(t, 64)
	for i := 0; i < 6; i++ {
		s.Record(42)
	}
	s.reset()
	if got := s.estimate(42); got != 3 {
		t.Errorf("estimate=%d after halving, want 3", got)
	}
	s.reset()
	if got := s.estimate(42); got != 1 {
		t.Errorf("estimate=%d after second halving, want 1", got)
	}
}

func TestTinyLFU_AgingTriggersAtThreshold(t *testing.T) {
	s := newSketch(t, 64) // resetThreshold=640
	for i := 0; i < 639; i++ {
		s.Record(42)
	}
	if got := s.estimate(42); got != 15 {
		t.Fatalf("estimate=%d before the threshold, want saturated", got)
	}
	s.Record(42) // crosses the threshold, halves, then bumps
	if got := s.estimate(42); got != 8 {
		t.Errorf("estimate=%d after aging, want 8", got)
	}
	if s.samples != 0 {
		t.Errorf("samples=%d, aging must restart the count", s.samples)
	}
}

func TestTinyLFU_MinimumTableSize(t *testing.T) {
	s := newSketch(t, 1)
	if len(s.table) != 64 {
		t.Errorf("table size %d, want the 64-word floor", len(s.table))
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{63, 64},
		{64, 64},
		{65, 128},
		{1000, 1024},
	}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Errorf("nextPowerOf2(%d)=%d, want %d", tt.in, got, tt.want)
		}
	}
}
