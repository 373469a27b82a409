package config

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		GeminiAPIKey:    "test-gemini-key-12345",
		ModelName:       DefaultModel,
		EvolutionURL:    "http://localhost:8080",
		EvolutionAPIKey: "test-evolution-key-12345",
		InstanceName:    "whatsapp-bot",
		InventoryFile:   "Inventario_Completo.xlsx",
		InventorySheet:  "Productos",
		ChunkLimit:      DefaultChunkLimit,
		ChunkDelay:      time.Second,
		Port:            8000,
		RateBurst:       30,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("empty model name", func(t *testing.T) {
		cfg := validConfig()
		cfg.ModelName = ""
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidModelName)
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = 0
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPort)

		cfg.Port = 70000
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPort)
	})

	t.Run("chunk limit too small", func(t *testing.T) {
		cfg := validConfig()
		cfg.ChunkLimit = 10
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidChunkLimit)
	})

	t.Run("missing inventory file", func(t *testing.T) {
		cfg := validConfig()
		cfg.InventoryFile = ""
		assert.ErrorIs(t, cfg.Validate(), ErrMissingInventoryFile)
	})
}

func TestValidateServe(t *testing.T) {
	t.Run("valid serve config", func(t *testing.T) {
		require.NoError(t, validConfig().ValidateServe())
	})

	t.Run("missing gemini key", func(t *testing.T) {
		cfg := validConfig()
		cfg.GeminiAPIKey = ""
		assert.ErrorIs(t, cfg.ValidateServe(), ErrMissingGeminiKey)
	})

	t.Run("missing evolution url", func(t *testing.T) {
		cfg := validConfig()
		cfg.EvolutionURL = ""
		assert.ErrorIs(t, cfg.ValidateServe(), ErrMissingEvolutionURL)
	})

	t.Run("missing evolution key", func(t *testing.T) {
		cfg := validConfig()
		cfg.EvolutionAPIKey = ""
		assert.ErrorIs(t, cfg.ValidateServe(), ErrMissingEvolutionKey)
	})
}

func TestMarshalJSON_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.GeminiAPIKey = "super-secret-gemini-key"
	cfg.EvolutionAPIKey = "super-secret-evolution-key"
	cfg.WebhookSecret = "short"

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "super-secret-gemini-key")
	assert.NotContains(t, out, "super-secret-evolution-key")
	assert.NotContains(t, out, "short")
	assert.Contains(t, out, maskedValue)
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.WebhookSecret = "another-long-webhook-secret"

	s := cfg.String()
	assert.False(t, strings.Contains(s, "another-long-webhook-secret"),
		"String() must not leak secrets: %s", s)
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		check func(t *testing.T, out string)
	}{
		{
			name: "empty stays empty",
			in:   "",
			check: func(t *testing.T, out string) {
				assert.Empty(t, out)
			},
		},
		{
			name: "short secret fully masked",
			in:   "12345678",
			check: func(t *testing.T, out string) {
				assert.Equal(t, maskedValue, out)
			},
		},
		{
			name: "long secret keeps edges",
			in:   "my_long_secret_key_123",
			check: func(t *testing.T, out string) {
				assert.True(t, strings.HasPrefix(out, "my"))
				assert.True(t, strings.HasSuffix(out, "23"))
				assert.NotContains(t, out, "long_secret")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, maskSecret(tt.in))
		})
	}
}
