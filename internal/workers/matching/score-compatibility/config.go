// internal/workers/matching/score-compatibility/config.go
package scorecompatibility

import (
	"runtime"
	"time"

	"marketplace-workers/internal/common/config"
)

type Config struct {
	Weights           map[string]float64
	ReputationDefault int
	MaxConcurrency    int
	CacheTTL          time.Duration
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Weights:           config.DefaultWeights(),
		ReputationDefault: 70,
		MaxConcurrency:    runtime.NumCPU(),
		CacheTTL:          10 * time.Minute,
		Timeout:           30 * time.Second,
	}
}

// FromMatching overlays the application matching section onto the
// defaults.
func FromMatching(m config.MatchingConfig) *Config {
	cfg := LoadConfig()
	if len(m.Weights) > 0 {
		cfg.Weights = m.Weights
	}
	if m.ReputationDefault > 0 {
		cfg.ReputationDefault = m.ReputationDefault
	}
	if m.MaxConcurrency > 0 {
		cfg.MaxConcurrency = m.MaxConcurrency
	}
	if m.CacheTTLSeconds > 0 {
		cfg.CacheTTL = time.Duration(m.CacheTTLSeconds) * time.Second
	}
	return cfg
}
