package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabaseFile) != "" {
		if c.Paths.DatabaseFile, err = expandPath(c.Paths.DatabaseFile); err != nil {
			return fmt.Errorf("paths.database_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("PERSONA_LLM_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeRender() {
	c.Render.BaseURL = strings.TrimRight(strings.TrimSpace(c.Render.BaseURL), "/")
	if c.Render.BaseURL == "" {
		c.Render.BaseURL = defaultRenderBaseURL
	}
	if strings.TrimSpace(c.Render.SamplerName) == "" {
		c.Render.SamplerName = defaultRenderSampler
	}
	if c.Render.BatchSize <= 0 {
		c.Render.BatchSize = defaultRenderBatchSize
	}
	if c.Render.TimeoutSeconds <= 0 {
		c.Render.TimeoutSeconds = defaultRenderTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
