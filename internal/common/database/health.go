// internal/common/database/health.go
package database

import "context"

// Pinger is implemented by every client in this package.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check pings every named dependency and returns the failures by name.
// Nil pingers are skipped so optional backends can be passed unconditionally.
func Check(ctx context.Context, deps map[string]Pinger) map[string]error {
	failures := make(map[string]error)
	for name, p := range deps {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			failures[name] = err
		}
	}
	return failures
}
