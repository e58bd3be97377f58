package testsupport

import (
	"path/filepath"
	"testing"

	"persona/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.OutputDir = filepath.Join(base, "images")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LLM.APIKey = "test"
	cfg.Render.ModelCheckpoint = "test.safetensors"
	cfg.Pipeline.PromptDelaySeconds = 0
	cfg.Pipeline.ImageDelaySeconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithPromptDelay overrides the prompt stage delay on the test config.
func WithPromptDelay(seconds int) ConfigOption {
	return func(c *config.Config) {
		c.Pipeline.PromptDelaySeconds = seconds
	}
}
