package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config holds lectern's settings.
type Config struct {
	BaseURL   string
	Catalog   string
	UserAgent string
	Timeout   time.Duration
	LogLevel  string
	LogFile   string
}

const (
	defaultConfigPath = "~/.config/lectern/config.toml"
	defaultCatalog    = "~/.config/lectern/catalog.yaml"
	defaultUserAgent  = "lectern/0.1"
	defaultTimeout    = 10 * time.Second
	defaultLogLevel   = "info"
	defaultLogFile    = "~/.local/state/lectern/lectern.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Catalog:   mustExpand(defaultCatalog),
		UserAgent: defaultUserAgent,
		Timeout:   defaultTimeout,
		LogLevel:  defaultLogLevel,
		LogFile:   mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when
// it is missing. Blank values also take their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL   string `toml:"base_url"`
		Catalog   string `toml:"catalog"`
		UserAgent string `toml:"user_agent"`
		Timeout   string `toml:"timeout"`
		LogLevel  string `toml:"log_level"`
		LogFile   string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)
	if v := strings.TrimSpace(raw.Catalog); v != "" {
		cfg.Catalog = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.UserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timeout %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("base_url", c.BaseURL, httpURL),
		criterio.Run("timeout", c.Timeout, positive),
		criterio.Run("log_level", c.LogLevel, logLevel),
	)
}

func httpURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func logLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
