// Command simulate replays an access trace against the segmented eviction
// policies and reports their hit rates. With no trace file it generates a
// seeded Zipf workload, the usual stand-in for production traces.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/evictlab/windsim"
	"github.com/evictlab/windsim/metrics/prom"
)

func main() {
	var (
		tracePath  = flag.String("trace", "", "trace file of decimal keys, one per line (.lz4/.sz supported); empty = synthetic Zipf")
		configPath = flag.String("config", "", "simulator config file (JSON/YAML/TOML); empty = flags only")
		watch      = flag.Bool("watch", false, "watch the config file and re-run the replay on change")

		maxSize  = flag.Int("max", windsim.DefaultMaximumSize, "policy capacity (entries)")
		policies = flag.String("policies", "lru,wtinylfu,wtinylfu-adaptive,s4-wtinylfu", "comma-separated policy names")

		ops   = flag.Int("ops", 1_000_000, "synthetic workload length (accesses)")
		keys  = flag.Uint64("keys", 100_000, "synthetic keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", 1, "random seed for the synthetic workload")

		metricsAddr = flag.String("metrics", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	logger := &logrusLogger{log: log}

	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.WithField("addr", *metricsAddr).Info("serving Prometheus metrics")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	workload, err := loadWorkload(*tracePath, *seed, *zipfS, *zipfV, *keys, *ops)
	if err != nil {
		log.WithError(err).Fatal("failed to load workload")
	}
	log.WithField("accesses", len(workload)).Info("workload loaded")

	runner := &runner{
		log:      log,
		logger:   logger,
		names:    splitNames(*policies),
		workload: workload,
		metrics:  *metricsAddr != "",
		clock:    windsim.SystemTimeProvider{},
	}

	cfg := windsim.DefaultConfig()
	cfg.MaximumSize = *maxSize
	cfg.Logger = logger

	if *configPath == "" {
		if err := runner.run(cfg); err != nil {
			log.WithError(err).Fatal("replay failed")
		}
		return
	}

	reloads := make(chan windsim.Config, 1)
	hc, err := windsim.NewHotConfig(windsim.HotConfigOptions{
		ConfigPath: *configPath,
		Logger:     logger,
		OnReload: func(_, newConfig windsim.Config) {
			select {
			case reloads <- newConfig:
			default:
			}
		},
	})
	if err != nil {
		log.WithError(err).Fatal("failed to watch config")
	}
	if err := hc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start config watcher")
	}
	defer func() { _ = hc.Stop() }()

	// Wait for the initial parse; fall back to flag defaults if the
	// watcher stays quiet.
	select {
	case cfg = <-reloads:
	case <-time.After(2 * time.Second):
		cfg = hc.Config()
	}
	cfg.Logger = logger
	if err := runner.run(cfg); err != nil {
		log.WithError(err).Fatal("replay failed")
	}

	if !*watch {
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	log.Info("watching config; edit the file to re-run the replay")
	for {
		select {
		case cfg = <-reloads:
			cfg.Logger = logger
			if err := runner.run(cfg); err != nil {
				log.WithError(err).Fatal("replay failed")
			}
		case <-sig:
			log.Info("shutting down")
			return
		}
	}
}

// runner replays one in-memory workload against a set of policies.
type runner struct {
	log      *logrus.Logger
	logger   windsim.Logger
	names    []string
	workload []uint64
	metrics  bool
	clock    windsim.TimeProvider

	collectors map[string]*prom.Collector
}

// run builds fresh policies for cfg, replays them concurrently (one
// goroutine per policy, each on its own copy of the key stream), and
// prints the report.
func (r *runner) run(cfg windsim.Config) error {
	built, err := r.buildPolicies(cfg)
	if err != nil {
		return err
	}

	start := r.clock.Now()
	var g errgroup.Group
	for _, p := range built {
		p := p
		g.Go(func() error {
			return windsim.Replay(p, windsim.NewSliceSource(r.workload))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Duration(r.clock.Now() - start)

	fmt.Printf("max=%d accesses=%d elapsed=%v\n", cfg.MaximumSize, len(r.workload), elapsed.Round(time.Millisecond))
	for _, p := range built {
		s := p.Stats()
		fmt.Printf("%-22s ops=%-9d hits=%-9d misses=%-9d evictions=%-8d hit-rate=%6.2f%%\n",
			p.Name(), s.Operations(), s.Hits(), s.Misses(), s.Evictions(), s.HitRatio())
	}
	return nil
}

// buildPolicies constructs one policy per configured name. Prometheus
// collectors are registered once per name and reused across watch re-runs.
func (r *runner) buildPolicies(cfg windsim.Config) ([]windsim.Policy, error) {
	if r.collectors == nil {
		r.collectors = make(map[string]*prom.Collector)
	}

	built := make([]windsim.Policy, 0, len(r.names))
	for _, name := range r.names {
		c := cfg
		c.Stats = windsim.NewPolicyStats(name)
		if r.metrics {
			collector, ok := r.collectors[name]
			if !ok {
				collector = prom.New(nil, "windsim", name)
				r.collectors[name] = collector
			}
			c.Stats.WithMirror(collector)
		}

		p, err := buildPolicy(name, c)
		if err != nil {
			return nil, err
		}
		built = append(built, p)
	}
	return built, nil
}

func buildPolicy(name string, cfg windsim.Config) (windsim.Policy, error) {
	switch name {
	case "lru":
		return windsim.NewLRU(cfg)
	case "wtinylfu":
		return windsim.NewWindowTinyLFU(cfg)
	case "wtinylfu-adaptive":
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return windsim.NewAdaptiveWindowTinyLFU(cfg, windsim.NewSimpleClimber(cfg))
	case "s4-wtinylfu":
		return windsim.NewS4WindowTinyLFU(cfg)
	case "s4-wtinylfu-adaptive":
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return windsim.NewAdaptiveS4WindowTinyLFU(cfg, windsim.NewSimpleClimber(cfg))
	default:
		return nil, windsim.NewErrUnknownPolicy(name)
	}
}

// loadWorkload reads the whole key stream into memory so every policy
// replays an identical sequence.
func loadWorkload(tracePath string, seed int64, zipfS, zipfV float64, keys uint64, ops int) ([]uint64, error) {
	if tracePath == "" {
		return windsim.ReadAll(windsim.NewZipfSource(seed, zipfS, zipfV, keys, ops))
	}
	t, err := windsim.OpenTrace(tracePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = t.Close() }()
	return windsim.ReadAll(t)
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// logrusLogger adapts logrus to the windsim.Logger interface.
type logrusLogger struct {
	log *logrus.Logger
}

func (l *logrusLogger) Debug(msg string, keyvals ...interface{}) { l.log.WithFields(fields(keyvals)).Debug(msg) }
func (l *logrusLogger) Info(msg string, keyvals ...interface{})  { l.log.WithFields(fields(keyvals)).Info(msg) }
func (l *logrusLogger) Warn(msg string, keyvals ...interface{})  { l.log.WithFields(fields(keyvals)).Warn(msg) }
func (l *logrusLogger) Error(msg string, keyvals ...interface{}) { l.log.WithFields(fields(keyvals)).Error(msg) }

func fields(keyvals []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		if k, ok := keyvals[i].(string); ok {
			f[k] = keyvals[i+1]
		}
	}
	return f
}
