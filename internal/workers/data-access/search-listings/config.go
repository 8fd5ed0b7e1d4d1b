// internal/workers/data-access/search-listings/config.go
package searchlistings

import "time"

type Config struct {
	IndexName string
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName: "listings",
		Timeout:   15 * time.Second,
	}
}
