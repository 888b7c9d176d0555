// internal/workers/sales/compose-reply/config.go
package composereply

import "time"

type Config struct {
	Timeout time.Duration
	// SnippetLength bounds description excerpts in explanation replies.
	SnippetLength int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		SnippetLength: 140,
	}
}
