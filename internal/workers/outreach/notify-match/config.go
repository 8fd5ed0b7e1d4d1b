// internal/workers/outreach/notify-match/config.go
package notifymatch

import "time"

type Config struct {
	AWSRegion    string
	SenderEmail  string
	EmailEnabled bool
	SMSEnabled   bool
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:    "us-east-1",
		SenderEmail:  "matches@marketplace.example.com",
		EmailEnabled: true,
		SMSEnabled:   false,
		Timeout:      20 * time.Second,
	}
}
