package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"modelhub/internal/fsutil"
)

// Config holds the settings of the modelhub command.
// Zero values mean "unspecified" and will be replaced by defaults by the caller.
type Config struct {
	BaseURL   string `json:"base_url" yaml:"base_url" toml:"base_url"`
	Token     string `json:"token" yaml:"token" toml:"token"`
	TokenType string `json:"token_type" yaml:"token_type" toml:"token_type"`
	// Source is sent with every upload unless overridden per call.
	Source   string `json:"source" yaml:"source" toml:"source"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// RequestTimeoutSeconds bounds each HTTP call made by the command (0 = none).
	RequestTimeoutSeconds int `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading ~ is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Environment variables read by FromEnv.
const (
	EnvBaseURL        = "MODELHUB_BASE_URL"
	EnvToken          = "MODELHUB_TOKEN"
	EnvTokenType      = "MODELHUB_TOKEN_TYPE"
	EnvSource         = "MODELHUB_SOURCE"
	EnvLogLevel       = "MODELHUB_LOG_LEVEL"
	EnvRequestTimeout = "MODELHUB_REQUEST_TIMEOUT_SECONDS"
)

// FromEnv returns cfg with every set MODELHUB_* variable applied on top.
func FromEnv(cfg Config) Config {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(EnvTokenType); v != "" {
		cfg.TokenType = v
	}
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RequestTimeoutSeconds = n
		}
	}
	return cfg
}
