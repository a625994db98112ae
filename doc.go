// Package windsim simulates admission-aware, segmented cache eviction
// policies. It replays a trace of key accesses against an in-memory model
// of each policy and reports hit, miss, and eviction counts, estimating
// the hit-rate behavior of a cache design before deployment.
//
// # Policies
//
// Two Window-TinyLFU engines share a skeleton: an LRU admission window
// (eden) in front of a frequency-guarded main space.
//
//   - WindowTinyLFU: the main space is a two-tier Segmented LRU split into
//     probation and protected regions.
//   - S4WindowTinyLFU: the main space is an N-level S4LRU ladder with
//     cascading demotion.
//
// When an entry slips out of eden into a full main space, a TinyLFU
// admission filter (a Count-Min Sketch of 4-bit counters) compares the
// candidate's historical frequency against the main space's victim, and
// exactly one of them is evicted. An unsegmented LRUPolicy serves as the
// comparison baseline.
//
// # Adaptation
//
// The adaptive constructors attach a hill climbing controller that
// watches the hit rate over sliding sample windows and shifts capacity
// between eden and the main space whenever a window stalls. SimpleClimber
// is a bang-bang local search: it reverses direction when improvement
// falls inside the tolerance, with decaying step and sample sizes until
// the search freezes.
//
// # Usage
//
//	cfg := windsim.DefaultConfig()
//	cfg.MaximumSize = 4096
//
//	policy, err := windsim.NewWindowTinyLFU(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src := windsim.NewZipfSource(1, 1.1, 1.0, 100_000, 1_000_000)
//	if err := windsim.Replay(policy, src); err != nil {
//	    log.Fatal(err) // invariant violation: results are not trustworthy
//	}
//	fmt.Printf("hit rate: %.2f%%\n", policy.Stats().HitRatio())
//
// Traces can also be read from files with OpenTrace; decimal keys one per
// line, with transparent .lz4 and .sz decompression.
//
// # Model, not cache
//
// The simulator models admission and eviction decisions only: there is no
// value storage, no TTL, and no concurrency inside a policy. One trace
// replay is one sequential stream of Record calls against one policy
// instance. Replaying several policies concurrently is fine as long as
// each goroutine owns its policy, which is what cmd/simulate does.
//
// # Errors
//
// Configuration problems are rejected at construction with WINDSIM_*
// coded errors (see errors.go). Invariant violations are fatal: Record
// panics and Finished returns a WINDSIM_INVARIANT_VIOLATION error,
// because corrupted bookkeeping invalidates every statistic gathered so
// far.
//
// # Packages
//
//   - github.com/evictlab/windsim: policy engines, climber, trace ingestion
//   - github.com/evictlab/windsim/metrics/prom: Prometheus stats export
//   - github.com/evictlab/windsim/cmd/simulate: replay driver
package windsim
