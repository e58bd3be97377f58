package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"persona/internal/config"
)

func TestLoadDefaultsExpandPathsAndReadEnvKey(t *testing.T) {
	t.Setenv("PERSONA_LLM_API_KEY", "env-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, "persona", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "persona", "images") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected LLM key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != config.Default().LLM.BaseURL {
		t.Fatalf("unexpected LLM base url: %q", cfg.LLM.BaseURL)
	}
	if cfg.Render.Steps != 30 {
		t.Fatalf("unexpected render steps: %d", cfg.Render.Steps)
	}
	if !cfg.Render.RestoreFaces {
		t.Fatal("expected restore_faces enabled by default")
	}
	if cfg.Pipeline.PromptDelaySeconds != 1 || cfg.Pipeline.ImageDelaySeconds != 2 {
		t.Fatalf("unexpected pipeline delays: %+v", cfg.Pipeline)
	}

	wantDB := filepath.Join(cfg.Paths.LogDir, "profiles.db")
	if cfg.DatabasePath() != wantDB {
		t.Fatalf("unexpected database path: got %q want %q", cfg.DatabasePath(), wantDB)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadParsesFileAndNormalizesValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[llm]
api_key = "file-key"
base_url = "https://example.test/v1/"

[render]
model_checkpoint = "checkpoint.safetensors"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be loaded, got %q exists=%v", path, resolved, exists)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Fatalf("unexpected api key: %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://example.test/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.LLM.BaseURL)
	}
	if err := cfg.RequireRenderCheckpoint(); err != nil {
		t.Fatalf("RequireRenderCheckpoint failed: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"temperature", func(c *config.Config) { c.LLM.Temperature = 3 }, "llm.temperature"},
		{"steps", func(c *config.Config) { c.Render.Steps = 0 }, "render.steps"},
		{"dimensions", func(c *config.Config) { c.Render.Width = -1 }, "render.width"},
		{"delay", func(c *config.Config) { c.Pipeline.PromptDelaySeconds = -1 }, "prompt_delay_seconds"},
		{"format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRequireLLMCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = ""
	if err := cfg.RequireLLMCredentials(); err == nil {
		t.Fatal("expected error when api key missing")
	}
	cfg.LLM.APIKey = "key"
	if err := cfg.RequireLLMCredentials(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	written, err := config.CreateSample(path)
	if err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if written != path {
		t.Fatalf("unexpected path: %q", written)
	}
	if _, err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}
