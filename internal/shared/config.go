package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	EnvAPIURL = "RECIPES_API_URL"
	EnvToken  = "RECIPES_TOKEN"
	EnvConfig = "RECIPES_CONFIG"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig describes the summarization backend.
type APIConfig struct {
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	ListCount      int     `toml:"list_count"`
	HitRate        float64 `toml:"hit_rate"`
}

// AuthConfig contains the Google OAuth client credentials.
type AuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	DebounceMS int    `toml:"debounce_ms"`
	LogPath    string `toml:"log_path"`
}

// Timeout returns the HTTP client timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Debounce returns the search box debounce delay.
func (c UIConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Configured reports whether a Google client is set up for interactive login.
func (c AuthConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && !strings.HasPrefix(c.ClientID, "your_")
}

// Validate checks the fields the client cannot run without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.ListCount <= 0 {
		return fmt.Errorf("%w: api.list_count must be positive", ErrInvalidConfig)
	}
	if c.API.HitRate <= 0 {
		return fmt.Errorf("%w: api.hit_rate must be positive", ErrInvalidConfig)
	}
	if c.UI.DebounceMS < 0 {
		return fmt.Errorf("%w: ui.debounce_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML configuration file from path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	return config, nil
}

// ResolveConfig loads path when it exists, falls back to defaults otherwise,
// then applies environment overrides.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		switch {
		case err == nil:
			config = loaded
		case !errors.Is(err, ErrMissingConfig):
			return nil, err
		}
	}

	config.ApplyEnv(os.Getenv)
	return config, config.Validate()
}

// ApplyEnv overrides config values with the RECIPES_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = strings.TrimRight(v, "/")
	}
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
