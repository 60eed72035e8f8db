package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/ticketboard/internal/config/colors"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database"`
	Validation  ValidationConfig   `yaml:"validation"`
	Daemon      DaemonConfig       `yaml:"daemon"`
	Log         LogConfig          `yaml:"log"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// DatabaseConfig locates the board database
type DatabaseConfig struct {
	Path       string `yaml:"path"`
	MaxRetries int    `yaml:"max_retries"`
}

// ValidationConfig bounds ticket titles, in characters
type ValidationConfig struct {
	TitleMinLength int `yaml:"title_min_length"`
	TitleMaxLength int `yaml:"title_max_length"`
}

// DaemonConfig configures the event daemon and its clients
type DaemonConfig struct {
	SocketPath      string `yaml:"socket_path"`
	BroadcastBuffer int    `yaml:"broadcast_buffer"`
	ClientBuffer    int    `yaml:"client_buffer"`
}

// LogConfig configures the log file
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns a config with every default filled in
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile merges the theme from TICKETBOARD_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TICKETBOARD_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Debug("theme file ignored", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Debug("theme file ignored", "path", themeFile, "error", err)
		return
	}
	config.ColorScheme.MergeFrom(themeConfig.Theme)
}

// Load reads the config file from the user's config directory, applies
// environment overrides and fills defaults. A missing file is not an error.
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := GetConfigPath()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case !errors.Is(readErr, os.ErrNotExist):
			return nil, readErr
		}
	}

	loadThemeFile(config)
	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "ticketboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ticketboard", "config.yaml"), nil
}

// DataDir returns ~/.ticketboard, the home of the database, socket and logs
func DataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ticketboard"
	}
	return filepath.Join(homeDir, ".ticketboard")
}

// applyEnv lets TICKETBOARD_DB, TICKETBOARD_SOCKET and TICKETBOARD_LOG_LEVEL
// override the file
func (c *Config) applyEnv() {
	if v := os.Getenv("TICKETBOARD_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("TICKETBOARD_SOCKET"); v != "" {
		c.Daemon.SocketPath = v
	}
	if v := os.Getenv("TICKETBOARD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TICKETBOARD_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Database.MaxRetries = n
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	dataDir := DataDir()

	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(dataDir, "tickets.db")
	}
	if c.Database.MaxRetries == 0 {
		c.Database.MaxRetries = models.DefaultMaxRetries
	}
	if c.Validation.TitleMinLength == 0 {
		c.Validation.TitleMinLength = models.DefaultTitleMinLength
	}
	if c.Validation.TitleMaxLength == 0 {
		c.Validation.TitleMaxLength = models.DefaultTitleMaxLength
	}
	if c.Daemon.SocketPath == "" {
		c.Daemon.SocketPath = filepath.Join(dataDir, "ticketboard.sock")
	}
	if c.Daemon.BroadcastBuffer == 0 {
		c.Daemon.BroadcastBuffer = 100
	}
	if c.Daemon.ClientBuffer == 0 {
		c.Daemon.ClientBuffer = 10
	}
	if c.Log.Path == "" {
		c.Log.Path = filepath.Join(dataDir, "logs", "ticketboard.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// Validate checks value ranges. It returns criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("database.path", c.Database.Path, notBlank),
		criterio.Run("log.level", c.Log.Level, logLevel),
		criterio.Run("theme.preset", c.ColorScheme.Preset, preset),
		c.validateNumbers(),
	)
}

func (c *Config) validateNumbers() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxRetries < 0 {
		errs = errs.Append("database.max_retries", fmt.Errorf("must not be negative, got %d", c.Database.MaxRetries))
	}
	if c.Validation.TitleMinLength < 1 {
		errs = errs.Append("validation.title_min_length", fmt.Errorf("must be at least 1, got %d", c.Validation.TitleMinLength))
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		errs = errs.Append("validation.title_max_length", fmt.Errorf("must be >= title_min_length (%d), got %d",
			c.Validation.TitleMinLength, c.Validation.TitleMaxLength))
	}
	if c.Daemon.BroadcastBuffer < 1 {
		errs = errs.Append("daemon.broadcast_buffer", fmt.Errorf("must be positive, got %d", c.Daemon.BroadcastBuffer))
	}
	if c.Daemon.ClientBuffer < 1 {
		errs = errs.Append("daemon.client_buffer", fmt.Errorf("must be positive, got %d", c.Daemon.ClientBuffer))
	}
	return errs.ToError()
}

func notBlank(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func logLevel(s string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("unknown level %q (must be: debug, info, warn, error)", s)
	}
	return nil
}

func preset(s string) error {
	for _, p := range colors.Presets() {
		if s == p {
			return nil
		}
	}
	return fmt.Errorf("unknown preset %q", s)
}
