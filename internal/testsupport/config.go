// Package testsupport provides shared fixtures for frontend tests: temp-dir
// configs and seeded queue source databases.
package testsupport

import (
	"path/filepath"
	"testing"

	"glidefront/internal/config"
	"glidefront/internal/match"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a validated-shape config seeded with unique temp
// directories per test. Queue sources default to one seeded empty database.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Frontend.Name = "frontend-test"
	cfg.Frontend.FactoryPool = "http://127.0.0.1:0"
	cfg.Schedds = []config.Schedd{
		{Name: "schedd-test", Path: SeedQueue(t, filepath.Join(base, "schedd-test.db"))},
	}
	cfg.Match.Requirements = []match.Clause{
		{JobAttr: "site", Op: match.OpEq, GlideinAttr: "GLIDEIN_Site"},
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithFactoryPool points the config at a test collector endpoint.
func WithFactoryPool(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Frontend.FactoryPool = url
	}
}

// WithSizing overrides the demand sizing bounds.
func WithSizing(maxIdle, reserveIdle int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Frontend.MaxIdle = maxIdle
		cfg.Frontend.ReserveIdle = reserveIdle
	}
}
