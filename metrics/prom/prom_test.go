// prom_test.go: unit tests for the Prometheus stats adapter
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/evictlab/windsim"
)

func TestCollector_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, "windsim", "wtinylfu")

	c.RecordOperation()
	c.RecordOperation()
	c.RecordHit()
	c.RecordMiss()
	c.RecordEviction()

	tests := []struct {
		name    string
		counter prometheus.Counter
		want    float64
	}{
		{"operations", c.operations, 2},
		{"hits", c.hits, 1},
		{"misses", c.misses, 1},
		{"evictions", c.evictions, 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.counter); got != tt.want {
			t.Errorf("%s=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCollector_MirrorsPolicyStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, "windsim", "lru")
	stats := windsim.NewPolicyStats("lru").WithMirror(c)

	stats.RecordOperation()
	stats.RecordMiss()
	stats.RecordEviction()

	if got := testutil.ToFloat64(c.misses); got != 1 {
		t.Errorf("mirrored misses=%v, want 1", got)
	}
	if got := testutil.ToFloat64(c.evictions); got != 1 {
		t.Errorf("mirrored evictions=%v, want 1", got)
	}
	if stats.Misses() != 1 {
		t.Errorf("primary counters must still advance, misses=%d", stats.Misses())
	}
}

func TestNew_RegistersPerPolicyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "windsim", "wtinylfu")
	New(reg, "windsim", "s4-wtinylfu") // distinct labels must not collide

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]int{}
	for _, f := range families {
		byName[f.GetName()] = len(f.GetMetric())
	}
	if got := byName["windsim_hits_total"]; got != 2 {
		t.Errorf("hits_total carries %d series, want one per policy", got)
	}
}
