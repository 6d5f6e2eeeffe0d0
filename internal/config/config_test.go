package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"options-engine/internal/errors"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config fails validation: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.RiskFreeRate != 0.05 {
		t.Errorf("risk_free_rate = %v, want default 0.05", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Analysis.MinHistory != 60 {
		t.Errorf("min_history = %v, want default 60", cfg.Analysis.MinHistory)
	}
	if cfg.Analysis.RefreshInterval != 30*time.Second {
		t.Errorf("refresh_interval = %v, want default 30s", cfg.Analysis.RefreshInterval)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "analysis:\n  risk_free_rate: 0.03\n  min_history: 90\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.RiskFreeRate != 0.03 {
		t.Errorf("risk_free_rate = %v, want 0.03", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Analysis.MinHistory != 90 {
		t.Errorf("min_history = %v, want 90", cfg.Analysis.MinHistory)
	}
	// Untouched keys keep their defaults.
	if cfg.Analysis.RefreshInterval != 30*time.Second {
		t.Errorf("refresh_interval = %v, want default 30s", cfg.Analysis.RefreshInterval)
	}
}

func TestLoad_RejectsInvalidRate(t *testing.T) {
	dir := t.TempDir()
	content := "analysis:\n  risk_free_rate: 1.5\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := Default()
	cfg.Analysis.RefreshInterval = 100 * time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sub-second refresh interval")
	}

	cfg = Default()
	cfg.Analysis.MinHistory = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for min_history below 2")
	}
}
