// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (secrets and runtime overrides)
//  2. Config file (~/.inventabot/config.yaml or ./config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - AI: Gemini model selection and API key
//   - WhatsApp: Evolution API endpoint, key and instance name
//   - Inventory: workbook path and sheet name
//   - Server: listen port, webhook secret, rate limiting
//   - Delivery: outbound chunk limit and inter-chunk pacing
//
// Security: sensitive values (API keys, webhook secret) are masked in
// String()/MarshalJSON and are expected from the environment, not the file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrMissingGeminiKey indicates GEMINI_API_KEY is not set.
	ErrMissingGeminiKey = errors.New("missing Gemini API key")

	// ErrMissingEvolutionURL indicates the Evolution API base URL is not set.
	ErrMissingEvolutionURL = errors.New("missing Evolution API URL")

	// ErrMissingEvolutionKey indicates the Evolution API key is not set.
	ErrMissingEvolutionKey = errors.New("missing Evolution API key")

	// ErrInvalidPort indicates the listen port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidChunkLimit indicates the outbound chunk limit is too small.
	ErrInvalidChunkLimit = errors.New("invalid chunk limit")

	// ErrInvalidModelName indicates the model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrMissingInventoryFile indicates the inventory workbook path is empty.
	ErrMissingInventoryFile = errors.New("missing inventory file")
)

const (
	// DefaultModel is the Gemini model used for answer generation.
	DefaultModel = "gemini-2.5-flash"

	// DefaultChunkLimit is the WhatsApp single-message character limit.
	DefaultChunkLimit = 4000

	// DefaultChunkDelay is the pause between consecutive chunk sends.
	DefaultChunkDelay = time.Second

	// MinChunkLimit guards against configurations that would shred every
	// answer into confetti.
	MinChunkLimit = 200
)

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
type Config struct {
	// AI configuration
	GeminiAPIKey string `mapstructure:"gemini_api_key" json:"gemini_api_key"` // SENSITIVE: masked in MarshalJSON
	ModelName    string `mapstructure:"model_name" json:"model_name"`

	// Evolution API (WhatsApp transport)
	EvolutionURL    string `mapstructure:"evolution_url" json:"evolution_url"`
	EvolutionAPIKey string `mapstructure:"evolution_api_key" json:"evolution_api_key"` // SENSITIVE: masked in MarshalJSON
	InstanceName    string `mapstructure:"instance_name" json:"instance_name"`

	// Inventory workbook
	InventoryFile  string `mapstructure:"inventory_file" json:"inventory_file"`
	InventorySheet string `mapstructure:"inventory_sheet" json:"inventory_sheet"`

	// Outbound delivery
	ChunkLimit int           `mapstructure:"chunk_limit" json:"chunk_limit"`
	ChunkDelay time.Duration `mapstructure:"chunk_delay" json:"chunk_delay"`

	// Server
	Port          int    `mapstructure:"port" json:"port"`
	WebhookSecret string `mapstructure:"webhook_secret" json:"webhook_secret"` // SENSITIVE: masked in MarshalJSON
	RateBurst     int    `mapstructure:"rate_burst" json:"rate_burst"`
	TrustProxy    bool   `mapstructure:"trust_proxy" json:"trust_proxy"`

	// Logging
	LogJSON bool `mapstructure:"log_json" json:"log_json"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".inventabot")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults plus env cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultModel)
	v.SetDefault("instance_name", "whatsapp-bot")
	v.SetDefault("inventory_file", "Inventario_Completo.xlsx")
	v.SetDefault("inventory_sheet", "Productos")
	v.SetDefault("chunk_limit", DefaultChunkLimit)
	v.SetDefault("chunk_delay", DefaultChunkDelay)
	v.SetDefault("port", 8000)
	v.SetDefault("rate_burst", 30)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("log_json", false)
}

// bindEnvVariables binds environment variables explicitly.
// Secrets are only ever read from the environment, never the config file.
func bindEnvVariables(v *viper.Viper) {
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("gemini_api_key", "GEMINI_API_KEY")
	mustBind("evolution_url", "EVOLUTION_API_URL")
	mustBind("evolution_api_key", "EVOLUTION_API_KEY")
	mustBind("instance_name", "INSTANCE_NAME")
	mustBind("webhook_secret", "WEBHOOK_SECRET")
	mustBind("inventory_file", "ARCHIVO_INVENTARIO")
	mustBind("inventory_sheet", "HOJA_PRODUCTOS")
	mustBind("port", "PORT")
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging. Short secrets are
// fully masked; longer ones keep the first and last two characters for
// debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.GeminiAPIKey = maskSecret(a.GeminiAPIKey)
	a.EvolutionAPIKey = maskSecret(a.EvolutionAPIKey)
	a.WebhookSecret = maskSecret(a.WebhookSecret)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
