// internal/workers/sales/detect-product-code/config.go
package detectproductcode

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
