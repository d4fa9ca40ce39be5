package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultVaultPath = "~/Documents/inkwell"

	defaultConfidenceThreshold = 0.6
	defaultPendingTTL          = time.Hour
	defaultStuckDays           = 7
)

// Config is the environment-driven runtime configuration. Unset or
// malformed values fall back to defaults; only the vault path has no
// further validation here because adapters create it on demand.
type Config struct {
	VaultPath           string
	Model               string
	ConfidenceThreshold float64
	PendingTTL          time.Duration
	StuckWindow         time.Duration
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		VaultPath:           VaultPath(),
		Model:               os.Getenv("INKWELL_MODEL"),
		ConfidenceThreshold: envFloat("INKWELL_CONFIDENCE_THRESHOLD", defaultConfidenceThreshold),
		PendingTTL:          envDuration("INKWELL_PENDING_TTL", defaultPendingTTL),
		StuckWindow:         time.Duration(envInt("INKWELL_STUCK_DAYS", defaultStuckDays)) * 24 * time.Hour,
	}
}

// VaultPath returns the vault path from INKWELL_VAULT env var,
// falling back to DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv("INKWELL_VAULT"); env != "" {
		return env
	}
	return DefaultVaultPath
}

func envFloat(key string, fallback float64) float64 {
	if env := os.Getenv(key); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil && v >= 0 && v <= 1 {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if env := os.Getenv(key); env != "" {
		if v, err := time.ParseDuration(env); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if env := os.Getenv(key); env != "" {
		if v, err := strconv.Atoi(env); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
