package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	OutputDir    string `toml:"output_dir"`
	LogDir       string `toml:"log_dir"`
	DatabaseFile string `toml:"database_file"`
}

// LLM contains connection settings for the text-generation service.
type LLM struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	Referer        string  `toml:"referer"`
	Title          string  `toml:"title"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Render contains settings for the Stable Diffusion WebUI txt2img endpoint.
type Render struct {
	BaseURL         string  `toml:"base_url"`
	ModelCheckpoint string  `toml:"model_checkpoint"`
	Steps           int     `toml:"steps"`
	SamplerName     string  `toml:"sampler_name"`
	CFGScale        float64 `toml:"cfg_scale"`
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	Seed            int64   `toml:"seed"`
	RestoreFaces    bool    `toml:"restore_faces"`
	BatchSize       int     `toml:"batch_size"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
}

// Pipeline contains stage driver timing settings.
type Pipeline struct {
	PromptDelaySeconds int `toml:"prompt_delay_seconds"`
	ImageDelaySeconds  int `toml:"image_delay_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for persona.
//
// Configuration sections by subsystem:
//   - Paths: import root, image output root, log dir, database location
//   - LLM: chat-completions connection used for prompt synthesis
//   - Render: Stable Diffusion WebUI connection and render parameters
//   - Pipeline: fixed inter-call delays between generation attempts
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	LLM      LLM      `toml:"llm"`
	Render   Render   `toml:"render"`
	Pipeline Pipeline `toml:"pipeline"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/persona/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. Load runs once at process start;
// the result is treated as immutable afterwards.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("persona.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for pipeline operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the resolved profile database location.
func (c *Config) DatabasePath() string {
	if strings.TrimSpace(c.Paths.DatabaseFile) != "" {
		return c.Paths.DatabaseFile
	}
	return filepath.Join(c.Paths.LogDir, "profiles.db")
}

// LockPath returns the run lock location used to enforce single-instance execution.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "persona.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return "", fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return expanded, nil
}
