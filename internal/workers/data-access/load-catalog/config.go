// internal/workers/data-access/load-catalog/config.go
package loadcatalog

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	Table    string
	Index    string
	// MaxProducts bounds one shop's catalog.
	MaxProducts int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		CacheTTL:    time.Minute,
		Table:       "products",
		Index:       "products",
		MaxProducts: 5000,
	}
}
