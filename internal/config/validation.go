package config

import "fmt"

// Validate checks the configuration for values that would make the server
// unable to operate. Called by Load() so a bad configuration fails fast.
func (c *Config) Validate() error {
	if c.ModelName == "" {
		return ErrInvalidModelName
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d (must be 1-65535)", ErrInvalidPort, c.Port)
	}
	if c.ChunkLimit < MinChunkLimit {
		return fmt.Errorf("%w: %d (must be >= %d)", ErrInvalidChunkLimit, c.ChunkLimit, MinChunkLimit)
	}
	if c.InventoryFile == "" {
		return ErrMissingInventoryFile
	}
	return nil
}

// ValidateServe checks the additional requirements of serve mode: the
// external collaborators (Gemini, Evolution API) must be reachable, so
// their credentials are mandatory. The inspect command deliberately skips
// these checks.
func (c *Config) ValidateServe() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingGeminiKey)
	}
	if c.EvolutionURL == "" {
		return fmt.Errorf("%w: set EVOLUTION_API_URL", ErrMissingEvolutionURL)
	}
	if c.EvolutionAPIKey == "" {
		return fmt.Errorf("%w: set EVOLUTION_API_KEY", ErrMissingEvolutionKey)
	}
	return nil
}
