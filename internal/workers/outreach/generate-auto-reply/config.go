// internal/workers/outreach/generate-auto-reply/config.go
package generateautoreply

import "time"

type Config struct {
	SignatureName string
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
