// s4wtinylfu.go: N-tier (S4LRU main space) Window-TinyLFU eviction engine
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

// S4WindowTinyLFU simulates Window-TinyLFU with an S4LRU main space: the
// main region is a ladder of LRU levels, a main hit promotes the entry one
// level (capped at the top), and overflowing levels cascade their oldest
// entry one level down. Victims are only ever taken from level 0.
//
// Unlike the two-tier engine, the admission filter records every access
// once, before dispatch, regardless of hit or miss.
type S4WindowTinyLFU struct {
	name     string
	data     map[uint64]*node
	stats    *PolicyStats
	admittor Admittor
	climber  Climber
	log      Logger

	headEden  *node
	headMainQ []*node
	sizeMainQ []int

	maximumSize int
	maxMain     int
	maxEden     int
	levels      int

	sizeEden int
}

// NewS4WindowTinyLFU builds the N-tier engine with a fixed eden/main split.
func NewS4WindowTinyLFU(cfg Config) (*S4WindowTinyLFU, error) {
	return newS4WindowTinyLFU("s4-wtinylfu", cfg, nil)
}

// NewAdaptiveS4WindowTinyLFU builds the N-tier engine with a hill climbing
// controller resizing the eden/main split at sample-window boundaries.
func NewAdaptiveS4WindowTinyLFU(cfg Config, climber Climber) (*S4WindowTinyLFU, error) {
	return newS4WindowTinyLFU("s4-wtinylfu-adaptive", cfg, climber)
}

func newS4WindowTinyLFU(name string, cfg Config, climber Climber) (*S4WindowTinyLFU, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxMain := int(float64(cfg.MaximumSize) * cfg.PercentMain)
	p := &S4WindowTinyLFU{
		name:        name,
		data:        make(map[uint64]*node),
		stats:       cfg.stats(name),
		admittor:    cfg.admittor(),
		climber:     climber,
		log:         cfg.Logger,
		headEden:    newSentinel(),
		headMainQ:   make([]*node, cfg.Levels),
		sizeMainQ:   make([]int, cfg.Levels),
		maximumSize: cfg.MaximumSize,
		maxMain:     maxMain,
		maxEden:     cfg.MaximumSize - maxMain,
		levels:      cfg.Levels,
	}
	for i := range p.headMainQ {
		p.headMainQ[i] = newSentinel()
	}
	return p, nil
}

// Record processes one access, dispatching on the region that owns the key.
func (p *S4WindowTinyLFU) Record(key uint64) {
	p.stats.RecordOperation()
	n := p.data[key]
	p.admittor.Record(key)
	hit := n != nil
	if n == nil {
		p.onMiss(key)
		p.stats.RecordMiss()
	} else {
		switch n.status {
		case statusEden:
			p.onEdenHit(n)
		case statusMain:
			p.onMainHit(n)
		default:
			panic(NewErrInvariant(p.name, "unknown region tag", map[string]interface{}{
				"key":    key,
				"status": n.status.String(),
			}))
		}
		p.stats.RecordHit()
	}
	p.climb(hit)
}

// onMiss adds the entry to the admission window, evicting if necessary.
func (p *S4WindowTinyLFU) onMiss(key uint64) {
	n := &node{key: key, status: statusEden}
	n.appendToTail(p.headEden)
	p.data[key] = n
	p.sizeEden++
	p.evict()
}

// onEdenHit moves the entry to the MRU position of the admission window.
func (p *S4WindowTinyLFU) onEdenHit(n *node) {
	n.moveToTail(p.headEden)
}

// onMainHit promotes the entry one level, capped at the top, then settles
// any level that overflowed its quota.
func (p *S4WindowTinyLFU) onMainHit(n *node) {
	n.remove()
	p.sizeMainQ[n.level]--
	if n.level < p.levels-1 {
		n.level++
	}

	n.appendToTail(p.headMainQ[n.level])
	p.sizeMainQ[n.level]++

	p.rebalance()
}

// rebalance demotes one entry per overflowing level, scanning from the
// most protected tier down so a single promotion cascades at most once
// per level within one call.
func (p *S4WindowTinyLFU) rebalance() {
	maxPerLevel := p.maxMain / p.levels
	for i := p.levels - 1; i > 0; i-- {
		if p.sizeMainQ[i] > maxPerLevel {
			demote := p.headMainQ[i].next
			demote.remove()
			p.sizeMainQ[i]--

			demote.level = i - 1
			p.sizeMainQ[demote.level]++
			demote.appendToTail(p.headMainQ[demote.level])
		}
	}
}

// evict spills eden's oldest entry into level 0 once the window is over
// its quota. If the policy is then over capacity, the admission filter
// decides between that candidate and level 0's victim.
func (p *S4WindowTinyLFU) evict() {
	if p.sizeEden <= p.maxEden {
		return
	}

	candidate := p.headEden.next
	candidate.remove()
	p.sizeEden--

	candidate.status = statusMain
	candidate.level = 0
	candidate.appendToTail(p.headMainQ[0])
	p.sizeMainQ[0]++

	if len(p.data) > p.maximumSize {
		victim := p.headMainQ[0].next
		evicted := candidate
		if p.admittor.Admit(candidate.key, victim.key) {
			evicted = victim
		}
		delete(p.data, evicted.key)
		evicted.remove()
		p.sizeMainQ[0]--

		p.stats.RecordEviction()
	}
}

// climb feeds the access outcome to the controller and applies any
// capacity shift it proposes.
func (p *S4WindowTinyLFU) climb(hit bool) {
	if p.climber == nil {
		return
	}
	if hit {
		p.climber.OnHit()
	} else {
		p.climber.OnMiss()
	}
	delta, ok := p.climber.Adapt()
	if !ok {
		return
	}
	if delta > 0 {
		p.increaseWindow(int(delta))
	} else if delta < 0 {
		p.decreaseWindow(int(-delta))
	}
}

// increaseWindow moves capacity from the main ladder into the admission
// window, pulling the oldest entries from the lowest occupied levels. The
// ladder keeps at least one slot per level so the per-level quota never
// collapses to zero.
func (p *S4WindowTinyLFU) increaseWindow(amount int) {
	if p.maxMain <= p.levels {
		return
	}
	quota := amount
	if quota > p.maxMain-p.levels {
		quota = p.maxMain - p.levels
	}
	p.maxEden += quota
	p.maxMain -= quota

	for i := 0; i < quota; i++ {
		var candidate *node
		for lvl := 0; lvl < p.levels; lvl++ {
			if head := p.headMainQ[lvl]; head.next != head {
				candidate = head.next
				break
			}
		}
		if candidate == nil {
			break // main space is empty
		}
		p.sizeMainQ[candidate.level]--
		candidate.remove()
		candidate.status = statusEden
		candidate.level = 0
		candidate.appendToTail(p.headEden)
		p.sizeEden++
	}
	p.log.Debug("window increased", "policy", p.name, "quota", quota, "max_eden", p.maxEden)
}

// decreaseWindow returns capacity to the main ladder, relinking eden's
// oldest entries at the head of level 0 so they keep their eviction
// seniority.
func (p *S4WindowTinyLFU) decreaseWindow(amount int) {
	if p.maxEden == 0 {
		return
	}
	quota := amount
	if quota > p.maxEden {
		quota = p.maxEden
	}
	p.maxEden -= quota
	p.maxMain += quota

	for i := 0; i < quota; i++ {
		candidate := p.headEden.next
		if candidate == p.headEden {
			break // window is empty
		}
		candidate.remove()
		candidate.status = statusMain
		candidate.level = 0
		candidate.appendToHead(p.headMainQ[0])
		p.sizeEden--
		p.sizeMainQ[0]++
	}
	p.log.Debug("window decreased", "policy", p.name, "quota", quota, "max_eden", p.maxEden)
}

// Finished verifies the maintained counters against a full scan of the
// key index.
func (p *S4WindowTinyLFU) Finished() error {
	eden := 0
	perLevel := make([]int, p.levels)
	for key, n := range p.data {
		if !n.isLinked() {
			return NewErrInvariant(p.name, "indexed node not linked", map[string]interface{}{
				"key": key,
			})
		}
		switch n.status {
		case statusEden:
			eden++
		case statusMain:
			if n.level < 0 || n.level >= p.levels {
				return NewErrInvariant(p.name, "level out of range", map[string]interface{}{
					"key":   key,
					"level": n.level,
				})
			}
			perLevel[n.level]++
		default:
			return NewErrInvariant(p.name, "unknown region tag", map[string]interface{}{
				"key":    key,
				"status": n.status.String(),
			})
		}
	}
	for i, counted := range perLevel {
		if counted != p.sizeMainQ[i] {
			return NewErrInvariant(p.name, "level counter diverged", map[string]interface{}{
				"level":      i,
				"counted":    counted,
				"maintained": p.sizeMainQ[i],
			})
		}
	}
	if eden != p.sizeEden {
		return NewErrInvariant(p.name, "eden counter diverged", map[string]interface{}{
			"counted":    eden,
			"maintained": p.sizeEden,
		})
	}
	if len(p.data) > p.maximumSize {
		return NewErrInvariant(p.name, "resident count exceeds maximum", map[string]interface{}{
			"resident": len(p.data),
			"maximum":  p.maximumSize,
		})
	}
	return nil
}

// Stats returns the collector counting this policy's outcomes.
func (p *S4WindowTinyLFU) Stats() *PolicyStats { return p.stats }

// Name identifies the policy in reports.
func (p *S4WindowTinyLFU) Name() string { return p.name }

var _ Policy = (*S4WindowTinyLFU)(nil)
