// baseline_test.go: unit tests for the LRU reference policy
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import "testing"

func TestLRUPolicy_HitMissEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaximumSize = 2
	p, err := NewLRU(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// 1 miss, 2 miss, 1 hit (refreshes recency), 3 miss evicting 2.
	for _, key := range []uint64{1, 2, 1, 3} {
		p.Record(key)
	}

	s := p.Stats()
	if s.Hits() != 1 || s.Misses() != 3 || s.Evictions() != 1 {
		t.Errorf("hits=%d misses=%d evictions=%d, want 1/3/1",
			s.Hits(), s.Misses(), s.Evictions())
	}
	if _, ok := p.cache.Peek(2); ok {
		t.Error("key 2 was the LRU entry and should have been evicted")
	}
	for _, key := range []uint64{1, 3} {
		if _, ok := p.cache.Peek(key); !ok {
			t.Errorf("key %d should be resident", key)
		}
	}
	if err := p.Finished(); err != nil {
		t.Errorf("consistency check failed: %v", err)
	}
}

func TestLRUPolicy_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaximumSize = 0
	if _, err := NewLRU(cfg); !IsConfigError(err) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
}

func TestLRUPolicy_Name(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaximumSize = 8
	p, err := NewLRU(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "lru" {
		t.Errorf("name=%q", p.Name())
	}
}
