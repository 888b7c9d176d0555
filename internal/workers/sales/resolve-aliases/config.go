// internal/workers/sales/resolve-aliases/config.go
package resolvealiases

import "time"

type Config struct {
	Timeout time.Duration
	// MaxFuzzyMatches caps the catalog words a single token may resolve to
	// in the fuzzy tier.
	MaxFuzzyMatches int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         5 * time.Second,
		MaxFuzzyMatches: 3,
	}
}
