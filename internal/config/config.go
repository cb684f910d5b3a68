// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for AI-chat.
//
// Configuration sources, in order of precedence:
//   - AICHAT_* environment variables (optionally from a .env file)
//   - ~/.ai-chat/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete AI-chat configuration.
type Config struct {
	// ServerURL is the base URL of the remote AI-chat service.
	ServerURL string `toml:"server_url"`

	// DefaultModel is sent with every chat creation/continuation.
	DefaultModel string `toml:"default_model"`

	// SystemPrompt, when non-empty, is attached to new chats.
	SystemPrompt string `toml:"system_prompt"`

	// RequestTimeoutSecs bounds every remote call. A request that would
	// otherwise hang resolves as a failure after this interval so the UI
	// never stays in a loading state forever. Clamped to 5-300.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`

	// RequestsPerSecond caps the outgoing request rate.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// PageLimit is the page size for chat/document/user listings.
	PageLimit int `toml:"page_limit"`

	// Search tuning
	Search SearchConfig `toml:"search"`

	// DropDir, when non-empty, is watched for new files; anything placed
	// there is uploaded to the document corpus.
	DropDir string `toml:"drop_dir"`

	// LogFile receives diagnostics (empty = <config dir>/ai-chat.log).
	LogFile string `toml:"log_file"`

	// Debug enables debug-level logging.
	Debug bool `toml:"debug"`
}

// SearchConfig contains defaults for the two search modes.
type SearchConfig struct {
	// KeywordLimit is the maximum number of keyword search hits.
	KeywordLimit int `toml:"keyword_limit"`
	// RAGCount is the number of documents requested from RAG search.
	RAGCount int `toml:"rag_count"`
	// ScoreThreshold filters hits below this similarity; negative disables it.
	ScoreThreshold float64 `toml:"score_threshold"`
}

// DefaultConfig returns the built-in defaults. Page and search limits mirror
// the service defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:          "http://127.0.0.1:8008",
		DefaultModel:       "gpt-4",
		RequestTimeoutSecs: 60,
		RequestsPerSecond:  10,
		PageLimit:          100,
		Search: SearchConfig{
			KeywordLimit:   10,
			RAGCount:       5,
			ScoreThreshold: -1,
		},
	}
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the application home directory (~/.ai-chat).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ai-chat"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads configuration from path (empty = default location), applies
// environment overrides and validates. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	// A .env in the working directory feeds the env overrides below.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies AICHAT_* environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("AICHAT_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("AICHAT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv("AICHAT_SYSTEM_PROMPT"); v != "" {
		c.SystemPrompt = v
	}
	if v := os.Getenv("AICHAT_DROP_DIR"); v != "" {
		c.DropDir = v
	}
	if v := os.Getenv("AICHAT_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("AICHAT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv("AICHAT_REQUEST_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestTimeoutSecs = n
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration, clamping numeric fields into their valid
// ranges rather than failing on out-of-range values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url %q", c.ServerURL)
	}

	c.RequestTimeoutSecs = clampInt(c.RequestTimeoutSecs, 5, 300)
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 10
	}
	c.PageLimit = clampInt(c.PageLimit, 1, 1000)
	c.Search.KeywordLimit = clampInt(c.Search.KeywordLimit, 1, 100)
	c.Search.RAGCount = clampInt(c.Search.RAGCount, 1, 50)
	if c.Search.ScoreThreshold > 1 {
		c.Search.ScoreThreshold = 1
	}

	if c.LogFile == "" {
		if dir, err := Dir(); err == nil {
			c.LogFile = filepath.Join(dir, "ai-chat.log")
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
