// internal/workers/data-access/learn-alias/config.go
package learnalias

import "time"

type Config struct {
	Timeout time.Duration
	// MaxTerms caps the targets stored for one alias.
	MaxTerms int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		MaxTerms: 10,
	}
}
