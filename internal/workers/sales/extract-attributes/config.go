// internal/workers/sales/extract-attributes/config.go
package extractattributes

import "time"

type Config struct {
	Timeout time.Duration
	// MaxExampleTitles bounds the example titles kept per vocabulary entry.
	MaxExampleTitles int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          5 * time.Second,
		MaxExampleTitles: 3,
	}
}
