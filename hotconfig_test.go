// hotconfig_test.go: unit tests for dynamic configuration parsing
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import "testing"

func TestParseSimulatorConfig_NestedSection(t *testing.T) {
	data := map[string]interface{}{
		"simulator": map[string]interface{}{
			"maximum_size":    1024,
			"percent_main":    0.95,
			"levels":          float64(8), // JSON decoders deliver numbers as float64
			"step_decay_rate": 0.9,
		},
	}

	cfg := parseSimulatorConfig(data)
	if cfg.MaximumSize != 1024 {
		t.Errorf("MaximumSize=%d, want 1024", cfg.MaximumSize)
	}
	if cfg.PercentMain != 0.95 {
		t.Errorf("PercentMain=%v, want 0.95", cfg.PercentMain)
	}
	if cfg.Levels != 8 {
		t.Errorf("Levels=%d, want 8", cfg.Levels)
	}
	if cfg.StepDecayRate != 0.9 {
		t.Errorf("StepDecayRate=%v, want 0.9", cfg.StepDecayRate)
	}
	// Untouched settings keep their defaults.
	if cfg.PercentSample != DefaultPercentSample {
		t.Errorf("PercentSample=%v, want default", cfg.PercentSample)
	}
}

func TestParseSimulatorConfig_FlatFile(t *testing.T) {
	data := map[string]interface{}{
		"maximum_size": int64(256),
		"tolerance":    0.01,
	}

	cfg := parseSimulatorConfig(data)
	if cfg.MaximumSize != 256 {
		t.Errorf("MaximumSize=%d, want 256", cfg.MaximumSize)
	}
	if cfg.Tolerance != 0.01 {
		t.Errorf("Tolerance=%v, want 0.01", cfg.Tolerance)
	}
}

func TestParseSimulatorConfig_UnrelatedFile(t *testing.T) {
	cfg := parseSimulatorConfig(map[string]interface{}{
		"server": map[string]interface{}{"port": 8080},
	})
	if cfg.MaximumSize != DefaultMaximumSize {
		t.Errorf("unrelated files must leave the defaults, MaximumSize=%d", cfg.MaximumSize)
	}
}

func TestParseSimulatorConfig_IgnoresMalformedValues(t *testing.T) {
	data := map[string]interface{}{
		"simulator": map[string]interface{}{
			"maximum_size": "lots",
			"percent_main": "most",
			"levels":       -3,
		},
	}
	cfg := parseSimulatorConfig(data)
	if cfg.MaximumSize != DefaultMaximumSize {
		t.Errorf("MaximumSize=%d, want default", cfg.MaximumSize)
	}
	if cfg.PercentMain != DefaultPercentMain {
		t.Errorf("PercentMain=%v, want default", cfg.PercentMain)
	}
	if cfg.Levels != DefaultLevels {
		t.Errorf("Levels=%d, want default", cfg.Levels)
	}
}

func TestHotConfig_RejectsInvalidChangeWholesale(t *testing.T) {
	hc := &HotConfig{log: NoOpLogger{}, config: DefaultConfig()}
	hc.config.MaximumSize = 128

	hc.handleConfigChange(map[string]interface{}{
		"simulator": map[string]interface{}{
			"maximum_size": 999,
			"percent_main": 3.0, // out of range, the whole change is dropped
		},
	})

	if got := hc.Config().MaximumSize; got != 128 {
		t.Errorf("MaximumSize=%d, invalid changes must keep the old config", got)
	}
}

func TestHotConfig_AppliesValidChange(t *testing.T) {
	var gotOld, gotNew Config
	called := false
	hc := &HotConfig{
		log:    NoOpLogger{},
		config: DefaultConfig(),
		OnReload: func(oldConfig, newConfig Config) {
			called = true
			gotOld, gotNew = oldConfig, newConfig
		},
	}

	hc.handleConfigChange(map[string]interface{}{
		"simulator": map[string]interface{}{
			"maximum_size": 2048,
		},
	})

	if got := hc.Config().MaximumSize; got != 2048 {
		t.Errorf("MaximumSize=%d, want 2048", got)
	}
	if !called {
		t.Fatal("OnReload must fire for a valid change")
	}
	if gotOld.MaximumSize != DefaultMaximumSize || gotNew.MaximumSize != 2048 {
		t.Errorf("OnReload saw %d -> %d, want %d -> 2048",
			gotOld.MaximumSize, gotNew.MaximumSize, DefaultMaximumSize)
	}
}

func TestNewHotConfig_RequiresPath(t *testing.T) {
	_, err := NewHotConfig(HotConfigOptions{})
	if err == nil {
		t.Fatal("expected an error for a missing config path")
	}
	if GetErrorCode(err) != ErrCodeInvalidConfig {
		t.Errorf("code=%q", GetErrorCode(err))
	}
}
