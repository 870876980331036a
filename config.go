package authlens

import (
	"log/slog"

	"github.com/synqronlabs/authlens/authres"
	"github.com/synqronlabs/authlens/route"
	"github.com/synqronlabs/authlens/suffix"
)

// Config contains configuration options for the Analyzer.
//
// The zero value is usable: every field has a default.
type Config struct {
	// Logger receives debug events about trust decisions and warnings about
	// malformed Authentication-Results headers.
	// Default: slog.Default()
	Logger *slog.Logger

	// Trust determines what happens when no Authentication-Results header
	// was written by the delivering relay.
	// Default: authres.TrustFallbackAll
	Trust authres.TrustPolicy

	// Suffixes is the public suffix list used for alignment.
	// Default: suffix.Curated
	Suffixes suffix.List

	// Delays are the inter-hop delay thresholds.
	// Default: route.DefaultThresholds (60s warning, 300s danger)
	Delays route.Thresholds
}

// DefaultConfig returns a Config with all defaults filled in.
func DefaultConfig() Config {
	return Config{
		Logger:   slog.Default(),
		Trust:    authres.TrustFallbackAll,
		Suffixes: suffix.Curated,
		Delays:   route.DefaultThresholds,
	}
}

// StrictConfig returns a Config that only trusts Authentication-Results
// headers written by the delivering relay and resolves organizational
// domains with the full ICANN suffix list.
func StrictConfig() Config {
	config := DefaultConfig()
	config.Trust = authres.TrustStrict
	config.Suffixes = suffix.ICANN
	return config
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Suffixes == nil {
		c.Suffixes = suffix.Curated
	}
	if c.Delays.Warning <= 0 {
		c.Delays.Warning = route.DefaultThresholds.Warning
	}
	if c.Delays.Danger <= 0 {
		c.Delays.Danger = route.DefaultThresholds.Danger
	}
	return c
}
