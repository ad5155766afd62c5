// Package config loads dsai settings from an optional YAML file, a .env
// file and DSAI_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/dsai/internal/assistant"
	"github.com/abhisek/dsai/internal/llm"
	"github.com/abhisek/dsai/internal/prompt"
	"github.com/abhisek/dsai/internal/topics"
)

// Config is the top-level dsai configuration.
type Config struct {
	LLM       llm.Config       `yaml:"llm"`
	Assistant assistant.Config `yaml:"assistant"`
	Server    ServerConfig     `yaml:"server"`

	// TopicsFile is an optional YAML topic catalog replacing the built-in one.
	TopicsFile string `yaml:"topics_file"`

	// Language is the programming language answers are requested in.
	Language string `yaml:"language"`

	// DBPath is the usage event database. Empty uses store.DefaultDBPath.
	DBPath string `yaml:"db_path"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		LLM:       llm.DefaultConfig(),
		Assistant: assistant.DefaultConfig(),
		Server:    ServerConfig{Addr: ":8080"},
		Language:  prompt.DefaultLanguage,
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.LLM.ApplyEnv()

	if v := os.Getenv("DSAI_TOPICS_FILE"); v != "" {
		c.TopicsFile = v
	}
	if v := os.Getenv("DSAI_LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("DSAI_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DSAI_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks the configuration for errors that would only surface
// on the first request.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Assistant.MaxTokens < 0 {
		return fmt.Errorf("assistant.max_tokens must not be negative, got %d", c.Assistant.MaxTokens)
	}
	if t := c.Assistant.Temperature; t < 0 || t > 1 {
		return fmt.Errorf("assistant.temperature must be within [0, 1], got %v", t)
	}
	return nil
}

// Catalog returns the topic catalog selected by TopicsFile, or the
// built-in catalog when none is set.
func (c *Config) Catalog() (*topics.Catalog, error) {
	if strings.TrimSpace(c.TopicsFile) == "" {
		return topics.Default(), nil
	}
	return topics.LoadFile(c.TopicsFile)
}

// PromptBuilder returns a prompt builder for the configured language.
func (c *Config) PromptBuilder() prompt.Builder {
	return prompt.Builder{Language: c.Language}
}

// DefaultPath returns $XDG_CONFIG_HOME/dsai/config.yaml, falling back to
// ~/.config/dsai/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("DSAI_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dsai", "config.yaml")
}
