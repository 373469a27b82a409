// Package api provides the HTTP surface of inventabot.
//
// Endpoints:
//
//	POST /webhook  →  inbound Evolution API message events
//	GET  /status   →  operational introspection (sessions, memory, AI)
//	GET  /health   →  liveness probe
//	GET  /         →  landing page
//
// File structure:
//   - server.go: server setup and lifecycle
//   - webhook.go: Evolution payload parsing and message processing
//   - status.go: status and landing endpoints
//   - middleware.go: recovery, request-ID, logging, secret check
//   - ratelimit.go: per-IP token bucket
//   - response.go: JSON response helper
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/inventabot/inventabot/internal/conversation"
	"github.com/inventabot/inventabot/internal/session"
)

// Server timeout configuration. The webhook handler is synchronous and
// waits on the AI backend, so the write timeout is generous.
const (
	ReadHeaderTimeout = 10 * time.Second
	ReadTimeout       = 30 * time.Second
	WriteTimeout      = 2 * time.Minute
	IdleTimeout       = 2 * time.Minute
	ShutdownTimeout   = 10 * time.Second
)

// MessageHandler processes one inbound message. Implemented by
// bot.Engine; faked in tests.
type MessageHandler interface {
	HandleMessage(ctx context.Context, sender, text string) error
}

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger   *slog.Logger
	Handler  MessageHandler        // Required
	Sessions *session.Tracker      // Required: session count on /status
	Memory   *conversation.Memory  // Required: history count on /status

	InventoryLoaded bool // Reported on /status
	AIReady         bool // Reported on /status

	// WebhookSecret, when set, must match the x-webhook-secret header on
	// POST /webhook. Empty disables the check.
	WebhookSecret string

	// RateBurst is the per-IP token bucket size (0 = default 30).
	RateBurst int

	// TrustProxy trusts X-Real-IP/X-Forwarded-For (set behind a reverse
	// proxy).
	TrustProxy bool
}

// Server is the webhook HTTP server.
type Server struct {
	handler http.Handler
}

// NewServer creates a server with all routes and middleware configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Handler == nil {
		return nil, errors.New("message handler is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session tracker is required")
	}
	if cfg.Memory == nil {
		return nil, errors.New("conversation memory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	wh := &webhookHandler{
		engine: cfg.Handler,
		logger: logger,
	}
	st := &statusHandler{
		sessions:        cfg.Sessions,
		memory:          cfg.Memory,
		inventoryLoaded: cfg.InventoryLoaded,
		aiReady:         cfg.AIReady,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", wh.receive)
	mux.HandleFunc("GET /status", st.status)
	mux.HandleFunc("GET /", st.home)

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 30
	}
	rl := newRateLimiter(1.0, burst)

	// Middleware stack (outermost first):
	//   Recovery → RequestID → Logging → RateLimit → Secret → Routes
	var handler http.Handler = mux
	handler = secretMiddleware(cfg.WebhookSecret)(handler)
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Health stays outside the middleware stack so probes are never rate
	// limited.
	top := http.NewServeMux()
	top.HandleFunc("GET /health", health)
	top.Handle("/", handler)

	return &Server{handler: top}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// health is the liveness probe for container orchestration.
func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
