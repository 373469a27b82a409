package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventabot/inventabot/internal/conversation"
	"github.com/inventabot/inventabot/internal/log"
	"github.com/inventabot/inventabot/internal/session"
)

// fakeEngine records handled messages.
type fakeEngine struct {
	senders  []string
	messages []string
}

func (f *fakeEngine) HandleMessage(_ context.Context, sender, text string) error {
	f.senders = append(f.senders, sender)
	f.messages = append(f.messages, text)
	return nil
}

func newTestServer(t *testing.T, cfg ServerConfig) (*Server, *fakeEngine) {
	t.Helper()

	engine := &fakeEngine{}
	if cfg.Handler == nil {
		cfg.Handler = engine
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewTracker()
	}
	if cfg.Memory == nil {
		cfg.Memory = conversation.NewMemory()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv, engine
}

func postWebhook(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhook_SingleEvent(t *testing.T) {
	srv, engine := newTestServer(t, ServerConfig{})

	rec := postWebhook(t, srv, `{
		"data": {
			"messageType": "conversation",
			"key": {"remoteJid": "5551112222@s.whatsapp.net"},
			"message": {"conversation": "/inventario"}
		}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
	require.Len(t, engine.senders, 1)
	assert.Equal(t, "5551112222", engine.senders[0])
	assert.Equal(t, "/inventario", engine.messages[0])
}

func TestWebhook_EventArray(t *testing.T) {
	srv, engine := newTestServer(t, ServerConfig{})

	rec := postWebhook(t, srv, `{
		"data": [
			{"messageType": "conversation", "key": {"remoteJid": "111@s.whatsapp.net"}, "message": {"conversation": "hola"}},
			{"messageType": "conversation", "key": {"remoteJid": "222@s.whatsapp.net"}, "message": {"conversation": "buenas"}}
		]
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"111", "222"}, engine.senders)
}

func TestWebhook_IgnoresNonConversation(t *testing.T) {
	srv, engine := newTestServer(t, ServerConfig{})

	rec := postWebhook(t, srv, `{
		"data": {
			"messageType": "stickerMessage",
			"key": {"remoteJid": "111@s.whatsapp.net"}
		}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, engine.senders)
}

func TestWebhook_NoData(t *testing.T) {
	srv, engine := newTestServer(t, ServerConfig{})

	for _, body := range []string{`{}`, `{"data": null}`, `not json at all`} {
		rec := postWebhook(t, srv, body)
		assert.Equal(t, http.StatusOK, rec.Code, "body: %s", body)
		assert.Contains(t, rec.Body.String(), `"status":"no_data"`, "body: %s", body)
	}
	assert.Empty(t, engine.senders)
}

func TestWebhook_MissingSender(t *testing.T) {
	srv, engine := newTestServer(t, ServerConfig{})

	rec := postWebhook(t, srv, `{
		"data": {"messageType": "conversation", "message": {"conversation": "hola"}}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, engine.senders)
}

func TestWebhook_SecretRequired(t *testing.T) {
	srv, engine := newTestServer(t, ServerConfig{WebhookSecret: "topsecret"})

	body := `{"data": {"messageType": "conversation", "key": {"remoteJid": "111@s.whatsapp.net"}, "message": {"conversation": "hola"}}}`

	t.Run("missing secret is rejected", func(t *testing.T) {
		rec := postWebhook(t, srv, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, engine.senders)
	})

	t.Run("correct secret passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("x-webhook-secret", "topsecret")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, engine.senders, 1)
	})
}
