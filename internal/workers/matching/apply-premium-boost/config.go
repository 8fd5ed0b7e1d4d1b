// internal/workers/matching/apply-premium-boost/config.go
package applypremiumboost

import "time"

type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 15 * time.Minute,
		Timeout:  15 * time.Second,
	}
}
