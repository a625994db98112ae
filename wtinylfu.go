// wtinylfu.go: two-tier Window-TinyLFU eviction engine
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

// WindowTinyLFU simulates the Window-TinyLFU policy with a two-tier main
// space. A new entry starts in the eden queue and stays there while it has
// high temporal locality; eventually it slips from the end of eden onto
// the front of probation. When the policy is over capacity, the admission
// filter compares the newly demoted candidate against probation's victim
// and exactly one of them is evicted. Probation hits promote into the
// protected region, which spills its oldest entry back to probation when
// full. Scan resistance comes from eden: transient keys pass through
// without ever displacing a frequent main-space resident.
//
// With a Climber attached, the eden/main boundary is renegotiated at every
// sample-window boundary.
type WindowTinyLFU struct {
	name     string
	data     map[uint64]*node
	stats    *PolicyStats
	admittor Admittor
	climber  Climber
	log      Logger

	headEden      *node
	headProbation *node
	headProtected *node

	maximumSize         int
	maxEden             int
	maxProtected        int
	recencyMoveDistance int

	sizeEden           int
	sizeProtected      int
	mainRecencyCounter int
}

// NewWindowTinyLFU builds the two-tier engine with a fixed eden/main split.
func NewWindowTinyLFU(cfg Config) (*WindowTinyLFU, error) {
	return newWindowTinyLFU("wtinylfu", cfg, nil)
}

// NewAdaptiveWindowTinyLFU builds the two-tier engine with a hill climbing
// controller resizing the eden/main split at sample-window boundaries.
func NewAdaptiveWindowTinyLFU(cfg Config, climber Climber) (*WindowTinyLFU, error) {
	return newWindowTinyLFU("wtinylfu-adaptive", cfg, climber)
}

func newWindowTinyLFU(name string, cfg Config, climber Climber) (*WindowTinyLFU, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxMain := int(float64(cfg.MaximumSize) * cfg.PercentMain)
	p := &WindowTinyLFU{
		name:                name,
		data:                make(map[uint64]*node),
		stats:               cfg.stats(name),
		admittor:            cfg.admittor(),
		climber:             climber,
		log:                 cfg.Logger,
		headEden:            newSentinel(),
		headProbation:       newSentinel(),
		headProtected:       newSentinel(),
		maximumSize:         cfg.MaximumSize,
		maxEden:             cfg.MaximumSize - maxMain,
		maxProtected:        int(float64(maxMain) * cfg.PercentMainProtected),
		recencyMoveDistance: int(float64(maxMain) * cfg.PercentFastPath),
	}
	return p, nil
}

// Record processes one access, dispatching on the region that owns the key.
func (p *WindowTinyLFU) Record(key uint64) {
	p.stats.RecordOperation()
	n := p.data[key]
	hit := n != nil
	if n == nil {
		p.onMiss(key)
		p.stats.RecordMiss()
	} else {
		switch n.status {
		case statusEden:
			p.onEdenHit(n)
		case statusProbation:
			p.onProbationHit(n)
		case statusProtected:
			p.onProtectedHit(n)
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
func (p *WindowTinyLFU) onMiss(key uint64) {
	p.admittor.Record(key)

	n := &node{key: key, status: statusEden}
	n.appendToTail(p.headEden)
	p.data[key] = n
	p.sizeEden++
	p.evict()
}

// onEdenHit moves the entry to the MRU position of the admission window.
func (p *WindowTinyLFU) onEdenHit(n *node) {
	p.admittor.Record(n.key)
	n.moveToTail(p.headEden)
}

// onProbationHit promotes the entry to the protected region's MRU position,
// demoting the protected region's oldest entry if necessary.
func (p *WindowTinyLFU) onProbationHit(n *node) {
	p.admittor.Record(n.key)

	n.remove()
	n.status = statusProtected
	n.appendToTail(p.headProtected)
	p.mainRecencyCounter++
	n.recencyMove = p.mainRecencyCounter

	p.sizeProtected++
	p.demoteProtected()
}

// onProtectedHit moves the entry to the MRU position, unless it falls
// inside the fast-path threshold. The hottest entries are already ordered
// well enough that reordering them again buys nothing.
func (p *WindowTinyLFU) onProtectedHit(n *node) {
	if n.recencyMove <= p.mainRecencyCounter-p.recencyMoveDistance {
		p.admittor.Record(n.key)
		n.moveToTail(p.headProtected)
		p.mainRecencyCounter++
		n.recencyMove = p.mainRecencyCounter
	}
}

// demoteProtected spills the protected region's oldest entries back to
// probation until it fits its quota. At most one entry overflows through
// a hit; window shrinking can leave more.
func (p *WindowTinyLFU) demoteProtected() {
	for p.sizeProtected > p.maxProtected {
		demote := p.headProtected.next
		demote.remove()
		demote.status = statusProbation
		demote.appendToTail(p.headProbation)
		p.sizeProtected--
	}
}

// evict spills eden's oldest entry into probation once the window is over
// its quota. If the policy as a whole is then over capacity, the admission
// filter decides between that candidate and probation's victim, and the
// loser is evicted.
func (p *WindowTinyLFU) evict() {
	if p.sizeEden <= p.maxEden {
		return
	}

	candidate := p.headEden.next
	p.sizeEden--

	candidate.remove()
	candidate.status = statusProbation
	candidate.appendToTail(p.headProbation)

	if len(p.data) > p.maximumSize {
		victim := p.headProbation.next
		evicted := candidate
		if p.admittor.Admit(candidate.key, victim.key) {
			evicted = victim
		}
		delete(p.data, evicted.key)
		evicted.remove()

		p.stats.RecordEviction()
	}
}

// climb feeds the access outcome to the controller and applies any
// capacity shift it proposes.
func (p *WindowTinyLFU) climb(hit bool) {
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

// increaseWindow moves capacity from the main space into the admission
// window, pulling the oldest probation entries (then the oldest protected
// entries) along with it.
func (p *WindowTinyLFU) increaseWindow(amount int) {
	if p.maxProtected == 0 {
		return
	}
	quota := amount
	if quota > p.maxProtected {
		quota = p.maxProtected
	}
	p.maxEden += quota
	p.maxProtected -= quota
	p.demoteProtected()

	for i := 0; i < quota; i++ {
		candidate := p.headProbation.next
		if candidate == p.headProbation {
			candidate = p.headProtected.next
		}
		if candidate == p.headProtected {
			break // main space is empty
		}
		if candidate.status == statusProtected {
			p.sizeProtected--
		}
		candidate.remove()
		candidate.status = statusEden
		candidate.appendToTail(p.headEden)
		p.sizeEden++
	}
	p.log.Debug("window increased", "policy", p.name, "quota", quota, "max_eden", p.maxEden)
}

// decreaseWindow returns capacity to the main space, relinking eden's
// oldest entries at the head of probation so they keep their eviction
// seniority.
func (p *WindowTinyLFU) decreaseWindow(amount int) {
	if p.maxEden == 0 {
		return
	}
	quota := amount
	if quota > p.maxEden {
		quota = p.maxEden
	}
	p.maxEden -= quota
	p.maxProtected += quota

	for i := 0; i < quota; i++ {
		candidate := p.headEden.next
		if candidate == p.headEden {
			break // window is empty
		}
		candidate.remove()
		candidate.status = statusProbation
		candidate.appendToHead(p.headProbation)
		p.sizeEden--
	}
	p.log.Debug("window decreased", "policy", p.name, "quota", quota, "max_eden", p.maxEden)
}

// Finished verifies the maintained counters against a full scan of the
// key index.
func (p *WindowTinyLFU) Finished() error {
	var eden, probation, protected int
	for key, n := range p.data {
		if !n.isLinked() {
			return NewErrInvariant(p.name, "indexed node not linked", map[string]interface{}{
				"key": key,
			})
		}
		switch n.status {
		case statusEden:
			eden++
		case statusProbation:
			probation++
		case statusProtected:
			protected++
		default:
			return NewErrInvariant(p.name, "unknown region tag", map[string]interface{}{
				"key":    key,
				"status": n.status.String(),
			})
		}
	}
	if eden != p.sizeEden {
		return NewErrInvariant(p.name, "eden counter diverged", map[string]interface{}{
			"counted":    eden,
			"maintained": p.sizeEden,
		})
	}
	if protected != p.sizeProtected {
		return NewErrInvariant(p.name, "protected counter diverged", map[string]interface{}{
			"counted":    protected,
			"maintained": p.sizeProtected,
		})
	}
	if probation != len(p.data)-eden-protected {
		return NewErrInvariant(p.name, "probation population inconsistent", map[string]interface{}{
			"counted":  probation,
			"resident": len(p.data),
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
func (p *WindowTinyLFU) Stats() *PolicyStats { return p.stats }

// Name identifies the policy in reports.
func (p *WindowTinyLFU) Name() string { return p.name }

var _ Policy = (*WindowTinyLFU)(nil)
