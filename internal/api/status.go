package api

import (
	"net/http"

	"github.com/inventabot/inventabot/internal/conversation"
	"github.com/inventabot/inventabot/internal/session"
)

// statusHandler exposes read-only operational introspection.
type statusHandler struct {
	sessions        *session.Tracker
	memory          *conversation.Memory
	inventoryLoaded bool
	aiReady         bool
}

// statusResponse is the GET /status body.
type statusResponse struct {
	Status              string `json:"status"`
	Bot                 string `json:"bot"`
	Gemini              string `json:"gemini"`
	Inventory           string `json:"inventario"`
	ActiveSessions      int    `json:"sesiones_activas"`
	ActiveConversations int    `json:"conversaciones_activas"`
}

// status reports server state and live counters.
func (h *statusHandler) status(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{
		Status:              "running",
		Bot:                 "inventabot",
		Gemini:              "initialized",
		Inventory:           "loaded",
		ActiveSessions:      h.sessions.Count(),
		ActiveConversations: h.memory.Count(),
	}
	if !h.aiReady {
		resp.Gemini = "error"
	}
	if !h.inventoryLoaded {
		resp.Inventory = "not_available"
	}
	writeJSON(w, http.StatusOK, resp)
}

// home is a minimal landing page naming the endpoints and the session
// commands.
func (h *statusHandler) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<h1>🤖 inventabot</h1>
<p>✅ Servidor webhook funcionando</p>
<p>📡 Endpoint: /webhook</p>
<p>📊 Estado: /status</p>
<hr>
<h2>🎯 Control de Sesiones</h2>
<p><strong>/inventario</strong> - Iniciar sesión de inventario</p>
<p><strong>/fin</strong> - Terminar sesión</p>
<p>El bot solo responde dentro de sesiones activas</p>
`))
}
