package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func TestClient_PostJSON(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		expectError  bool
		expectStatus int
		expectCalls  int32
	}{
		{"first attempt succeeds", []int{200}, false, 0, 1},
		{"retries server errors", []int{503, 502, 200}, false, 0, 3},
		{"gives up after max retries", []int{500, 500, 500, 500}, true, 500, 3},
		{"client errors are not retried", []int{400}, true, 400, 1},
		{"rate limit is retried", []int{429, 200}, false, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))

				var in map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, "ping", in["q"])

				w.WriteHeader(tt.statuses[n-1])
				_, _ = w.Write([]byte(`{"answer":"pong"}`))
			}))
			defer srv.Close()

			client := NewClient(time.Second, fastRetry()).WithHeader("Authorization", "Bearer k")

			var out struct {
				Answer string `json:"answer"`
			}
			err := client.PostJSON(context.Background(), srv.URL, map[string]string{"q": "ping"}, &out)

			assert.Equal(t, tt.expectCalls, atomic.LoadInt32(&calls))
			if tt.expectError {
				var statusErr *StatusError
				require.True(t, stderrors.As(err, &statusErr))
				assert.Equal(t, tt.expectStatus, statusErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pong", out.Answer)
		})
	}
}

func TestClient_PostJSON_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := NewClient(time.Second, fastRetry()).PostJSON(ctx, srv.URL, map[string]string{}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Backoff(t *testing.T) {
	c := NewClient(time.Second, RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond})

	assert.Equal(t, 100*time.Millisecond, c.backoff(0))
	assert.Equal(t, 200*time.Millisecond, c.backoff(1))
	assert.Equal(t, 300*time.Millisecond, c.backoff(2))
}
