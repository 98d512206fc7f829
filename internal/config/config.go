// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/types"
)

// Environment variables read by FromEnv
const (
	EnvAPIKey   = "GEMINI_API_KEY"
	EnvStoreDir = "RESUME_STORE_DIR"
	EnvOrigin   = "RESUME_ORIGIN"
	EnvModel    = "RESUME_MODEL"
	EnvPort     = "PORT"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, flags or Defaults.
type Config struct {
	// Completion service
	APIKey      string  `json:"api_key,omitempty"`     // Gemini API key
	Model       string  `json:"model,omitempty"`       // Overrides the standard tier model
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature; 0 keeps the model default

	// Storage and links
	StoreDir          string `json:"store_dir,omitempty"`            // Directory holding the saved resume
	Origin            string `json:"origin,omitempty"`               // Origin used in share links
	MaxShareURLLength int    `json:"max_share_url_length,omitempty"` // Share link ceiling in bytes

	// Presentation
	Template   string `json:"template,omitempty"`    // Default template id
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary used for PDF export

	// Server
	Port int `json:"port,omitempty"`

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Origin:            "http://localhost:8080",
		MaxShareURLLength: share.DefaultMaxURLLength,
		Template:          string(types.DefaultTemplate),
		Port:              8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns the configuration carried by environment variables.
// Call godotenv.Load first to pick up a .env file.
func FromEnv() Config {
	cfg := Config{
		APIKey:   os.Getenv(EnvAPIKey),
		StoreDir: os.Getenv(EnvStoreDir),
		Origin:   os.Getenv(EnvOrigin),
		Model:    os.Getenv(EnvModel),
	}
	if port, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Required values such as the API key are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxShareURLLength < 0 {
		return fmt.Errorf("config error: 'max_share_url_length' must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}

	if c.Template != "" {
		if _, err := types.ParseTemplateID(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'origin' must be an absolute http(s) URL: %s", c.Origin)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is applied in layers: flags over file over environment over Defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.StoreDir == "" {
		result.StoreDir = defaults.StoreDir
	}
	if result.Origin == "" {
		result.Origin = defaults.Origin
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxShareURLLength == 0 {
		result.MaxShareURLLength = defaults.MaxShareURLLength
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
