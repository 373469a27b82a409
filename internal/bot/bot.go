// Package bot implements the conversational engine: the session gate,
// the heuristic query dispatcher, the AI prompt composition and the
// chunked delivery of answers.
//
// The engine is transport-agnostic. The WhatsApp client and the Gemini
// client are injected behind the Transport and Generator interfaces, so
// the whole conversation flow is testable with fakes.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inventabot/inventabot/internal/conversation"
	"github.com/inventabot/inventabot/internal/inventory"
	"github.com/inventabot/inventabot/internal/session"
)

// Command tokens. Recognition is exact, case-insensitive, whitespace
// trimmed equality: "quiero /fin" is a normal message, not a command.
const (
	StartCommand = "/inventario"
	StopCommand  = "/fin"
)

// Fixed user-facing messages.
const (
	welcomeMessage = `🎯 **SESIÓN DE INVENTARIO INICIADA**

¡Hola! Ahora puedes preguntarme sobre el inventario:

📋 **Comandos disponibles:**
• "categorías" - Ver todas las categorías
• "stock total" - Calcular stock completo
• "buscar [producto]" - Buscar productos específicos
• "precio [producto]" - Ver precios
• "/fin" - Terminar sesión

¿En qué puedo ayudarte?`

	farewellMessage = `👋 **SESIÓN DE INVENTARIO FINALIZADA**

¡Gracias por usar el sistema de inventario!

Para volver a consultar el inventario, escribe: ` + "`/inventario`"

	noSessionMessage = "No tienes una sesión activa. Para iniciar, escribe: `/inventario`"

	apologyMessage = "❌ Disculpa, tuve un problema procesando tu mensaje. ¿Podrías intentar de nuevo?"
)

// Transport delivers one chunk of text to a sender identifier.
type Transport interface {
	Send(ctx context.Context, to, text string) error
}

// Generator produces a free-form answer for a composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config contains all required parameters for the Engine.
type Config struct {
	Sessions  *session.Tracker
	Memory    *conversation.Memory
	Table     *inventory.Table // nil when the workbook failed to load
	Generator Generator
	Transport Transport
	Logger    *slog.Logger

	// ChunkLimit is the transport's single-message character limit.
	ChunkLimit int

	// ChunkDelay is the pause between consecutive chunk sends.
	ChunkDelay time.Duration
}

// validate checks required parameters.
func (cfg Config) validate() error {
	if cfg.Sessions == nil {
		return errors.New("session tracker is required")
	}
	if cfg.Memory == nil {
		return errors.New("conversation memory is required")
	}
	if cfg.Generator == nil {
		return errors.New("generator is required")
	}
	if cfg.Transport == nil {
		return errors.New("transport is required")
	}
	if cfg.ChunkLimit <= 0 {
		return errors.New("chunk limit must be positive")
	}
	return nil
}

// Engine is the session-gated inventory query engine.
type Engine struct {
	sessions      *session.Tracker
	memory        *conversation.Memory
	table         *inventory.Table
	inventoryText string
	generator     Generator
	transport     Transport
	logger        *slog.Logger

	chunkLimit int
	chunkDelay time.Duration
}

// New creates an Engine. The inventory text for the AI prompt is rendered
// once here; the table is immutable after load.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		sessions:      cfg.Sessions,
		memory:        cfg.Memory,
		table:         cfg.Table,
		inventoryText: cfg.Table.Text(),
		generator:     cfg.Generator,
		transport:     cfg.Transport,
		logger:        logger,
		chunkLimit:    cfg.ChunkLimit,
		chunkDelay:    cfg.ChunkDelay,
	}, nil
}

// HandleMessage processes one inbound message from a sender: commands
// toggle the session, everything else is answered only inside an active
// session. Without a session the message is dropped with no reply; the
// bot never initiates unsolicited responses.
func (e *Engine) HandleMessage(ctx context.Context, sender, text string) error {
	command := strings.ToLower(strings.TrimSpace(text))

	switch command {
	case StartCommand:
		e.sessions.Start(sender)
		e.logger.Info("session started", "sender", sender)
		return e.deliver(ctx, sender, welcomeMessage)

	case StopCommand:
		if e.sessions.End(sender) {
			e.memory.Clear(sender)
			e.logger.Info("session ended", "sender", sender)
			return e.deliver(ctx, sender, farewellMessage)
		}
		return e.deliver(ctx, sender, noSessionMessage)
	}

	if !e.sessions.Active(sender) {
		e.logger.Debug("message ignored, no active session", "sender", sender)
		return nil
	}

	// History is rendered before recording the current message, so the
	// prompt shows prior turns and the message itself separately.
	history := e.memory.FormatRecent(sender)
	e.memory.Append(sender, text, true)

	facts := HeuristicFacts(e.table, text)
	prompt := BuildPrompt(history, facts, e.inventoryText, text)

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		e.logger.Error("answer generation failed", "sender", sender, "error", err)
		return e.deliver(ctx, sender, apologyMessage)
	}

	e.memory.Append(sender, answer, false)
	return e.deliver(ctx, sender, answer)
}

// deliver splits the answer into transport-safe chunks and sends them in
// order. The first chunk goes out unlabeled; later chunks carry a
// "Parte i/N" prefix and are paced by ChunkDelay. Delivery stops at the
// first failed send.
func (e *Engine) deliver(ctx context.Context, to, answer string) error {
	chunks := Split(answer, e.chunkLimit)
	if len(chunks) > 1 {
		e.logger.Info("long answer split", "sender", to, "length", len(answer), "chunks", len(chunks))
	}

	for i, chunk := range chunks {
		text := chunk
		if i > 0 {
			time.Sleep(e.chunkDelay)
			text = fmt.Sprintf("📄 Parte %d/%d:\n\n%s", i+1, len(chunks), chunk)
		}
		if err := e.transport.Send(ctx, to, text); err != nil {
			return fmt.Errorf("sending part %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}
