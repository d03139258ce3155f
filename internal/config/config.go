// Package config loads parkwatch configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Theme names accepted by ui.theme
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Poll    PollConfig    `mapstructure:"poll"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend configuration
type ServerConfig struct {
	URL string `mapstructure:"url"` // Base URL, e.g. http://127.0.0.1:8000
}

// PollConfig holds polling configuration
type PollConfig struct {
	Interval       time.Duration `mapstructure:"interval"`        // Pause between attempts
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"` // TCP connect bound
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`    // Response bound once connected
}

// UIConfig holds UI configuration
type UIConfig struct {
	Title string `mapstructure:"title"`
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://127.0.0.1:8000",
		},
		Poll: PollConfig{
			Interval:       300 * time.Millisecond,
			ConnectTimeout: 30 * time.Second,
			ReadTimeout:    30 * time.Second,
		},
		UI: UIConfig{
			Title: "Parqueos FAI UPSA",
			Theme: ThemeDefault,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "parkwatch", "parkwatch.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "parkwatch", "parkwatch.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "parkwatch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "parkwatch")
	}
}

// LoadConfig loads configuration from file and environment.
// An empty configFile searches the default locations; a missing file there is not an error.
func LoadConfig(configFile string) (*Config, error) {
	return load(viper.New(), configFile, []string{defaultConfigPath(), "."})
}

func load(v *viper.Viper, configFile string, searchPaths []string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	// Environment variable overrides: PARKWATCH_SERVER_URL, PARKWATCH_POLL_INTERVAL, ...
	v.SetEnvPrefix("PARKWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("poll.interval", cfg.Poll.Interval)
	v.SetDefault("poll.connect_timeout", cfg.Poll.ConnectTimeout)
	v.SetDefault("poll.read_timeout", cfg.Poll.ReadTimeout)
	v.SetDefault("ui.title", cfg.UI.Title)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks the configuration for values the poller cannot work with.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server.url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("server.url: missing host")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be > 0, got %s", c.Poll.Interval)
	}
	if c.Poll.ConnectTimeout <= 0 {
		return fmt.Errorf("poll.connect_timeout must be > 0, got %s", c.Poll.ConnectTimeout)
	}
	if c.Poll.ReadTimeout <= 0 {
		return fmt.Errorf("poll.read_timeout must be > 0, got %s", c.Poll.ReadTimeout)
	}
	switch c.UI.Theme {
	case ThemeDefault, ThemeMono:
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	return nil
}
