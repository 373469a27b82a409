package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// conversationType is the only Evolution event shape the bot processes;
// everything else (stickers, reactions, receipts) is ignored.
const conversationType = "conversation"

// jidSuffix is stripped from remoteJid to recover the phone number.
const jidSuffix = "@s.whatsapp.net"

// webhookPayload is the Evolution API event envelope. Data may be a
// single event object or an array of them.
type webhookPayload struct {
	Data json.RawMessage `json:"data"`
}

// messageEvent is one inbound message event.
type messageEvent struct {
	MessageType string `json:"messageType"`
	Key         struct {
		RemoteJid string `json:"remoteJid"`
	} `json:"key"`
	Message struct {
		Conversation string `json:"conversation"`
	} `json:"message"`
}

// webhookHandler processes inbound Evolution API events.
type webhookHandler struct {
	engine MessageHandler
	logger *slog.Logger
}

// receive is the POST /webhook endpoint. Events are processed
// synchronously to completion; the response only tells Evolution the
// delivery was accepted, so parse failures are acknowledged rather than
// retried forever.
func (h *webhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("webhook payload not parseable", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "no_data"})
		return
	}

	events := decodeEvents(payload.Data)
	if len(events) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"status": "no_data"})
		return
	}

	for _, ev := range events {
		h.process(r, ev)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// decodeEvents accepts either one event object or an array of events.
func decodeEvents(data json.RawMessage) []messageEvent {
	if len(data) == 0 {
		return nil
	}

	var many []messageEvent
	if err := json.Unmarshal(data, &many); err == nil {
		return many
	}

	var one messageEvent
	if err := json.Unmarshal(data, &one); err == nil {
		return []messageEvent{one}
	}
	return nil
}

// process handles a single event.
func (h *webhookHandler) process(r *http.Request, ev messageEvent) {
	if ev.MessageType != conversationType {
		h.logger.Debug("event ignored, not a conversation", "type", ev.MessageType)
		return
	}

	number := strings.TrimSuffix(ev.Key.RemoteJid, jidSuffix)
	if number == "" {
		h.logger.Warn("event without sender identifier")
		return
	}

	if err := h.engine.HandleMessage(r.Context(), number, ev.Message.Conversation); err != nil {
		h.logger.Error("message handling failed", "sender", number, "error", err)
	}
}
