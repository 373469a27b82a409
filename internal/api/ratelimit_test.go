package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inventabot/inventabot/internal/log"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := newRateLimiter(1.0, 3)

	// Burst of 3 passes, the 4th is rejected.
	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("1.2.3.4"), "request %d should pass", i+1)
	}
	assert.False(t, rl.allow("1.2.3.4"))

	// A different IP has its own bucket.
	assert.True(t, rl.allow("5.6.7.8"))
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := newRateLimiter(0.0, 1)
	handler := rateLimitMiddleware(rl, false, log.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:       "peer address when proxy not trusted",
			remoteAddr: "10.0.0.1:5555",
			headers:    map[string]string{"X-Real-IP": "1.1.1.1"},
			want:       "10.0.0.1",
		},
		{
			name:       "x-real-ip when trusted",
			remoteAddr: "10.0.0.1:5555",
			headers:    map[string]string{"X-Real-IP": "1.1.1.1"},
			trustProxy: true,
			want:       "1.1.1.1",
		},
		{
			name:       "first forwarded-for entry when trusted",
			remoteAddr: "10.0.0.1:5555",
			headers:    map[string]string{"X-Forwarded-For": "2.2.2.2, 3.3.3.3"},
			trustProxy: true,
			want:       "2.2.2.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trustProxy))
		})
	}
}
