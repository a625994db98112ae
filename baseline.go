// baseline.go: plain LRU reference policy
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import lru "github.com/hashicorp/golang-lru/v2/simplelru"

// LRUPolicy replays a trace against an unsegmented LRU cache, giving
// reports a reference point for the admission-aware policies. It keeps no
// values, only residency, like the rest of the simulator.
type LRUPolicy struct {
	name        string
	cache       *lru.LRU[uint64, struct{}]
	stats       *PolicyStats
	maximumSize int
}

// NewLRU builds the baseline policy. Only MaximumSize, Stats and Logger
// are consulted from cfg.
func NewLRU(cfg Config) (*LRUPolicy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &LRUPolicy{
		name:        "lru",
		stats:       cfg.stats("lru"),
		maximumSize: cfg.MaximumSize,
	}
	cache, err := lru.NewLRU[uint64, struct{}](cfg.MaximumSize, func(uint64, struct{}) {
		p.stats.RecordEviction()
	})
	if err != nil {
		return nil, NewErrInvalidMaxSize(cfg.MaximumSize)
	}
	p.cache = cache
	return p, nil
}

// Record processes one access: a hit refreshes recency, a miss admits the
// key unconditionally, evicting the LRU entry when full.
func (p *LRUPolicy) Record(key uint64) {
	p.stats.RecordOperation()
	if _, ok := p.cache.Get(key); ok {
		p.stats.RecordHit()
		return
	}
	p.stats.RecordMiss()
	p.cache.Add(key, struct{}{})
}

// Finished checks that residency never exceeded the configured maximum.
func (p *LRUPolicy) Finished() error {
	if p.cache.Len() > p.maximumSize {
		return NewErrInvariant(p.name, "resident count exceeds maximum", map[string]interface{}{
			"resident": p.cache.Len(),
			"maximum":  p.maximumSize,
		})
	}
	return nil
}

// Stats returns the collector counting this policy's outcomes.
func (p *LRUPolicy) Stats() *PolicyStats { return p.stats }

// Name identifies the policy in reports.
func (p *LRUPolicy) Name() string { return p.name }

var _ Policy = (*LRUPolicy)(nil)
