package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Credentials required only by
// specific commands (llm.api_key, render.model_checkpoint) are checked by
// those commands, not here, so read-only commands work unconfigured.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.max_tokens must be positive")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Steps <= 0 {
		return errors.New("render.steps must be positive")
	}
	if c.Render.CFGScale <= 0 {
		return errors.New("render.cfg_scale must be positive")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New("render.width and render.height must be positive")
	}
	if c.Render.BatchSize <= 0 {
		return errors.New("render.batch_size must be positive")
	}
	if c.Render.TimeoutSeconds <= 0 {
		return errors.New("render.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.PromptDelaySeconds < 0 {
		return errors.New("pipeline.prompt_delay_seconds must not be negative")
	}
	if c.Pipeline.ImageDelaySeconds < 0 {
		return errors.New("pipeline.image_delay_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireLLMCredentials verifies settings needed by the prompt stage.
func (c *Config) RequireLLMCredentials() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/persona/config.toml"
		}
		return fmt.Errorf("llm.api_key is required. Set PERSONA_LLM_API_KEY env var or edit %s (create with 'persona config init')", defaultPath)
	}
	return nil
}

// RequireRenderCheckpoint verifies settings needed by the image stage.
func (c *Config) RequireRenderCheckpoint() error {
	if strings.TrimSpace(c.Render.ModelCheckpoint) == "" {
		return errors.New("render.model_checkpoint is required for image generation")
	}
	return nil
}
