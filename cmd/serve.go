package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inventabot/inventabot/internal/api"
	"github.com/inventabot/inventabot/internal/bot"
	"github.com/inventabot/inventabot/internal/config"
	"github.com/inventabot/inventabot/internal/conversation"
	"github.com/inventabot/inventabot/internal/gemini"
	"github.com/inventabot/inventabot/internal/inventory"
	"github.com/inventabot/inventabot/internal/log"
	"github.com/inventabot/inventabot/internal/session"
	"github.com/inventabot/inventabot/internal/whatsapp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe wires the whole application and blocks until shutdown.
func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	level := slog.LevelInfo
	logger := log.New(log.Config{Level: level, JSON: cfg.LogJSON})
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting inventabot", "version", AppVersion, "port", cfg.Port)

	// The inventory is loaded once; a missing workbook degrades the bot
	// (aggregations answer "not available") instead of aborting startup.
	table, err := inventory.Load(cfg.InventoryFile, cfg.InventorySheet)
	if err != nil {
		logger.Warn("inventory not available", "file", cfg.InventoryFile, "error", err)
	} else {
		logger.Info("inventory loaded", "products", table.Len(), "columns", len(table.Columns))
	}

	ai, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	if err != nil {
		return fmt.Errorf("initializing Gemini: %w", err)
	}

	transport := whatsapp.NewClient(
		cfg.EvolutionURL,
		cfg.EvolutionAPIKey,
		cfg.InstanceName,
		logger.With("component", "whatsapp"),
		nil,
	)

	sessions := session.NewTracker()
	memory := conversation.NewMemory()

	engine, err := bot.New(bot.Config{
		Sessions:   sessions,
		Memory:     memory,
		Table:      table,
		Generator:  ai,
		Transport:  transport,
		Logger:     logger.With("component", "bot"),
		ChunkLimit: cfg.ChunkLimit,
		ChunkDelay: cfg.ChunkDelay,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	srv, err := api.NewServer(api.ServerConfig{
		Logger:          logger.With("component", "api"),
		Handler:         engine,
		Sessions:        sessions,
		Memory:          memory,
		InventoryLoaded: table != nil,
		AIReady:         true,
		WebhookSecret:   cfg.WebhookSecret,
		RateBurst:       cfg.RateBurst,
		TrustProxy:      cfg.TrustProxy,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("webhook server listening", "addr", addr)
	return srv.Run(ctx, addr)
}
