// config_test.go: unit tests for configuration validation
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import "testing"

func TestConfig_ValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"zero maximum size", func(c *Config) { c.MaximumSize = 0 }, "WINDSIM_INVALID_MAX_SIZE"},
		{"negative maximum size", func(c *Config) { c.MaximumSize = -4 }, "WINDSIM_INVALID_MAX_SIZE"},
		{"percent main above one", func(c *Config) { c.PercentMain = 1.5 }, "WINDSIM_INVALID_PERCENT"},
		{"negative protected fraction", func(c *Config) { c.PercentMainProtected = -0.1 }, "WINDSIM_INVALID_PERCENT"},
		{"fast path above one", func(c *Config) { c.PercentFastPath = 2 }, "WINDSIM_INVALID_PERCENT"},
		{"negative tolerance", func(c *Config) { c.Tolerance = -0.01 }, "WINDSIM_INVALID_PERCENT"},
		{"negative levels", func(c *Config) { c.Levels = -1 }, "WINDSIM_INVALID_LEVELS"},
		{"step decay above one", func(c *Config) { c.StepDecayRate = 1.01 }, "WINDSIM_INVALID_DECAY"},
		{"negative sample decay", func(c *Config) { c.SampleDecayRate = -0.5 }, "WINDSIM_INVALID_DECAY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !IsConfigError(err) {
				t.Errorf("not classified as a configuration error: %v", err)
			}
			if got := string(GetErrorCode(err)); got != tt.code {
				t.Errorf("code=%q, want %q", got, tt.code)
			}
		})
	}
}

func TestConfig_ValidateAppliesDefaults(t *testing.T) {
	cfg := Config{MaximumSize: 100}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.PercentMain != DefaultPercentMain {
		t.Errorf("PercentMain=%v, want default %v", cfg.PercentMain, DefaultPercentMain)
	}
	if cfg.PercentMainProtected != DefaultPercentMainProtected {
		t.Errorf("PercentMainProtected=%v, want default %v", cfg.PercentMainProtected, DefaultPercentMainProtected)
	}
	if cfg.Levels != DefaultLevels {
		t.Errorf("Levels=%d, want default %d", cfg.Levels, DefaultLevels)
	}
	if cfg.PercentPivot != DefaultPercentPivot {
		t.Errorf("PercentPivot=%v, want default %v", cfg.PercentPivot, DefaultPercentPivot)
	}
	if cfg.PercentSample != DefaultPercentSample {
		t.Errorf("PercentSample=%v, want default %v", cfg.PercentSample, DefaultPercentSample)
	}
	if cfg.StepDecayRate != DefaultStepDecayRate {
		t.Errorf("StepDecayRate=%v, want default %v", cfg.StepDecayRate, DefaultStepDecayRate)
	}
	if cfg.SampleDecayRate != DefaultSampleDecayRate {
		t.Errorf("SampleDecayRate=%v, want default %v", cfg.SampleDecayRate, DefaultSampleDecayRate)
	}
	if cfg.Logger == nil {
		t.Error("Logger should default to the no-op logger")
	}
}

func TestConfig_ValidatePreservesExplicitValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaximumSize = 64
	cfg.PercentMain = 0.5
	cfg.Levels = 2
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.PercentMain != 0.5 || cfg.Levels != 2 {
		t.Errorf("explicit values were overwritten: PercentMain=%v Levels=%d",
			cfg.PercentMain, cfg.Levels)
	}
}

func TestConfig_AdmittorDefaultsToSketch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaximumSize = 64
	if _, ok := cfg.admittor().(*tinyLFU); !ok {
		t.Error("nil Admittor should build a TinyLFU sketch")
	}

	stub := &stubAdmittor{}
	cfg.Admittor = stub
	if cfg.admittor() != stub {
		t.Error("a configured Admittor must be used as-is")
	}
}

func TestConfig_StatsDefaultsToFreshCollector(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.stats("sample")
	if s == nil || s.Name() != "sample" {
		t.Fatalf("expected a fresh collector named sample, got %+v", s)
	}

	own := NewPolicyStats("mine")
	cfg.Stats = own
	if cfg.stats("ignored") != own {
		t.Error("a configured collector must be used as-is")
	}
}
