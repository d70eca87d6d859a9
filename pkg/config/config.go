package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends for the prompt archive
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Environment variables that override the config file
const (
	EnvBackend    = "SHOT_BACKEND"
	EnvStorageKey = "SHOT_STORAGE_KEY"
	EnvLogLevel   = "SHOT_LOG_LEVEL"
)

type Config struct {
	// Storage Settings
	Backend    string `yaml:"backend"`
	StorageKey string `yaml:"storage_key"`

	// Listing
	DefaultSort   string `yaml:"default_sort"`
	ReverseSort   bool   `yaml:"reverse_sort"`
	PreviewLength int    `yaml:"preview_length"`

	// UI Settings
	DisplayDateFormat string `yaml:"display_date_format"`
	ColorTheme        string `yaml:"color_theme"`
	Editor            string `yaml:"editor"`

	// Behaviour
	CopyOnSave      bool              `yaml:"copy_on_save"`
	WatchDebounceMS int               `yaml:"watch_debounce_ms"`
	Aliases         map[string]string `yaml:"aliases"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Backend:           BackendFile,
		StorageKey:        "sora_prompts",
		DefaultSort:       "date",
		ReverseSort:       true,
		PreviewLength:     100,
		DisplayDateFormat: "2006-01-02",
		ColorTheme:        "auto",
		Editor:            "",
		CopyOnSave:        false,
		WatchDebounceMS:   150,
		Aliases:           make(map[string]string),
		LogLevel:          "info",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in missing or invalid essential values
func (c *Config) applyDefaults() {
	if c.Aliases == nil {
		c.Aliases = make(map[string]string)
	}
	if !isValidBackend(c.Backend) {
		c.Backend = BackendFile
	}
	if c.StorageKey == "" {
		c.StorageKey = "sora_prompts"
	}
	if !isValidSort(c.DefaultSort) {
		c.DefaultSort = "date"
	}
	if c.PreviewLength <= 0 {
		c.PreviewLength = 100
	}
	if c.DisplayDateFormat == "" {
		c.DisplayDateFormat = "2006-01-02"
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = 150
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ApplyEnv overrides values from SHOT_* environment variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" && isValidBackend(strings.ToLower(v)) {
		c.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorageKey)); v != "" {
		c.StorageKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValidBackend(backend string) bool {
	return backend == BackendFile || backend == BackendSQLite
}

func isValidSort(sortBy string) bool {
	switch sortBy {
	case "date", "updated", "title", "none":
		return true
	}
	return false
}
