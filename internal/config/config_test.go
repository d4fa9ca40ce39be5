package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"INKWELL_VAULT", "INKWELL_MODEL", "INKWELL_CONFIDENCE_THRESHOLD", "INKWELL_PENDING_TTL", "INKWELL_STUCK_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.VaultPath != DefaultVaultPath {
		t.Errorf("vault = %q", cfg.VaultPath)
	}
	if cfg.ConfidenceThreshold != 0.6 {
		t.Errorf("threshold = %v", cfg.ConfidenceThreshold)
	}
	if cfg.PendingTTL != time.Hour {
		t.Errorf("ttl = %v", cfg.PendingTTL)
	}
	if cfg.StuckWindow != 7*24*time.Hour {
		t.Errorf("stuck window = %v", cfg.StuckWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INKWELL_VAULT", "/tmp/vault")
	t.Setenv("INKWELL_MODEL", "gpt-4o")
	t.Setenv("INKWELL_CONFIDENCE_THRESHOLD", "0.8")
	t.Setenv("INKWELL_PENDING_TTL", "30m")
	t.Setenv("INKWELL_STUCK_DAYS", "14")

	cfg := Load()
	if cfg.VaultPath != "/tmp/vault" || cfg.Model != "gpt-4o" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ConfidenceThreshold != 0.8 {
		t.Errorf("threshold = %v", cfg.ConfidenceThreshold)
	}
	if cfg.PendingTTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.PendingTTL)
	}
	if cfg.StuckWindow != 14*24*time.Hour {
		t.Errorf("stuck window = %v", cfg.StuckWindow)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("INKWELL_CONFIDENCE_THRESHOLD", "1.5")
	t.Setenv("INKWELL_PENDING_TTL", "soon")
	t.Setenv("INKWELL_STUCK_DAYS", "-3")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.6 {
		t.Errorf("threshold = %v, want default", cfg.ConfidenceThreshold)
	}
	if cfg.PendingTTL != time.Hour {
		t.Errorf("ttl = %v, want default", cfg.PendingTTL)
	}
	if cfg.StuckWindow != 7*24*time.Hour {
		t.Errorf("stuck window = %v, want default", cfg.StuckWindow)
	}
}
