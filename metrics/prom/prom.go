// Package prom exports simulator outcome counters to Prometheus.
//
// The Collector implements windsim.StatsCollector; attach it to a policy's
// stats with WithMirror to publish live hit/miss/eviction counts while a
// long replay is running.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/evictlab/windsim"
)

// Collector implements windsim.StatsCollector and exports Prometheus
// counters. All Prometheus metric types are goroutine-safe, so one
// registry can serve several concurrently replaying policies.
type Collector struct {
	operations prometheus.Counter
	hits       prometheus.Counter
	misses     prometheus.Counter
	evictions  prometheus.Counter
}

// New constructs a Prometheus collector for the named policy.
//   - reg:    registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns:     Prometheus namespace
//   - policy: policy name, attached as a constant label
func New(reg prometheus.Registerer, ns, policy string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"policy": policy}
	c := &Collector{
		operations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Name:        "operations_total",
			Help:        "Processed trace accesses",
			ConstLabels: labels,
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Name:        "hits_total",
			Help:        "Accesses that found their key resident",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Name:        "misses_total",
			Help:        "Accesses that missed",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Name:        "evictions_total",
			Help:        "Entries evicted by the policy",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(c.operations, c.hits, c.misses, c.evictions)
	return c
}

// RecordOperation increments the operation counter.
func (c *Collector) RecordOperation() { c.operations.Inc() }

// RecordHit increments the hit counter.
func (c *Collector) RecordHit() { c.hits.Inc() }

// RecordMiss increments the miss counter.
func (c *Collector) RecordMiss() { c.misses.Inc() }

// RecordEviction increments the eviction counter.
func (c *Collector) RecordEviction() { c.evictions.Inc() }

// Compile-time check: ensure Collector implements windsim.StatsCollector.
var _ windsim.StatsCollector = (*Collector)(nil)
