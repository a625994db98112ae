// hotconfig.go: dynamic simulator configuration with Argus integration
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import (
	"sync"
	"time"

	"github.com/agilira/argus"
	"github.com/agilira/go-errors"
)

// HotConfig watches a simulator configuration file and hands the replay
// driver a freshly validated Config whenever it changes. Replays pick up
// the new settings on their next run; a running replay is never disturbed.
type HotConfig struct {
	watcher *argus.Watcher
	log     Logger

	mu     sync.RWMutex
	config Config

	// OnReload is called after a configuration change validated cleanly.
	// The callback must be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures the watcher.
type HotConfigOptions struct {
	// ConfigPath is the configuration file to watch. Supports the formats
	// Argus understands (JSON, YAML, TOML, HCL, INI, Properties).
	ConfigPath string

	// PollInterval is how often to check for changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after a configuration change validated cleanly.
	OnReload func(oldConfig, newConfig Config)

	// Logger for watcher diagnostics. If nil, NoOpLogger is used.
	Logger Logger
}

// NewHotConfig starts from DefaultConfig and watches the file at
// opts.ConfigPath. Settings that fail validation are rejected as a whole:
// the previous configuration stays in effect and the rejection is logged.
//
// Example configuration file (YAML):
//
//	simulator:
//	  maximum_size: 512
//	  percent_main: 0.99
//	  percent_main_protected: 0.80
//	  percent_fast_path: 0.04
//	  levels: 4
//	  percent_pivot: 0.0625
//	  percent_sample: 0.10
//	  tolerance: 0.0
//	  step_decay_rate: 0.98
//	  sample_decay_rate: 1.0
func NewHotConfig(opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, errors.NewWithField(ErrCodeInvalidConfig, "config_path is required", "config_path", "")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		log:      opts.Logger,
		config:   DefaultConfig(),
		OnReload: opts.OnReload,
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}
	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// Config returns the current configuration (thread-safe).
func (hc *HotConfig) Config() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

// handleConfigChange is called by Argus when the file changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	parsed := parseSimulatorConfig(configData)
	if err := parsed.Validate(); err != nil {
		hc.log.Warn("rejecting configuration change", "error", err)
		return
	}

	hc.mu.Lock()
	oldConfig := hc.config
	hc.config = parsed
	hc.mu.Unlock()

	hc.log.Info("configuration reloaded",
		"maximum_size", parsed.MaximumSize,
		"percent_main", parsed.PercentMain)

	if hc.OnReload != nil {
		hc.OnReload(oldConfig, parsed)
	}
}

// parseSimulatorConfig extracts simulator settings from Argus config data.
func parseSimulatorConfig(data map[string]interface{}) Config {
	config := DefaultConfig()

	section, ok := data["simulator"].(map[string]interface{})
	if !ok {
		// Tolerate a flat file without the section header.
		if _, hasMaxSize := data["maximum_size"]; hasMaxSize {
			section = data
		} else {
			return config
		}
	}

	if size, ok := parsePositiveInt(section["maximum_size"]); ok {
		config.MaximumSize = size
	}
	if levels, ok := parsePositiveInt(section["levels"]); ok {
		config.Levels = levels
	}
	for key, dst := range map[string]*float64{
		"percent_main":           &config.PercentMain,
		"percent_main_protected": &config.PercentMainProtected,
		"percent_fast_path":      &config.PercentFastPath,
		"percent_pivot":          &config.PercentPivot,
		"percent_sample":         &config.PercentSample,
		"tolerance":              &config.Tolerance,
		"step_decay_rate":        &config.StepDecayRate,
		"sample_decay_rate":      &config.SampleDecayRate,
	} {
		if v, ok := parseFloat(section[key]); ok {
			*dst = v
		}
	}

	return config
}

// parsePositiveInt extracts a positive integer from an interface{} value.
// Supports both int and float64 (YAML/JSON decoders vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case int64:
		if v > 0 {
			return int(v), true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseFloat extracts a float64 from an interface{} value. Range checking
// is left to Config.Validate so a bad value rejects the whole change.
func parseFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
