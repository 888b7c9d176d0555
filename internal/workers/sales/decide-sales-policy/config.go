// internal/workers/sales/decide-sales-policy/config.go
package decidesalespolicy

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
