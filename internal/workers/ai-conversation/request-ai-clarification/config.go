// internal/workers/ai-conversation/request-ai-clarification/config.go
package requestaiclarification

import (
	"time"

	httpclient "sales-workers/internal/common/http"
)

type Config struct {
	Timeout time.Duration
	BaseURL string
	APIKey  string
	Retry   httpclient.RetryConfig
	// MaxAliases bounds how many mappings one answer may teach.
	MaxAliases int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		BaseURL:    "http://localhost:8000",
		Retry:      httpclient.DefaultRetryConfig(),
		MaxAliases: 10,
	}
}
