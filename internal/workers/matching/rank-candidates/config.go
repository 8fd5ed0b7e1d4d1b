// internal/workers/matching/rank-candidates/config.go
package rankcandidates

import (
	"time"

	"marketplace-workers/internal/common/config"
)

type Config struct {
	DefaultLimit int
	MaxLimit     int
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultLimit: 20,
		MaxLimit:     100,
		Timeout:      10 * time.Second,
	}
}

func FromMatching(m config.MatchingConfig) *Config {
	cfg := LoadConfig()
	if m.DefaultLimit > 0 {
		cfg.DefaultLimit = m.DefaultLimit
	}
	if m.MaxLimit > 0 {
		cfg.MaxLimit = m.MaxLimit
	}
	return cfg
}
