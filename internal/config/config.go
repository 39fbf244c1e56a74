package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Player     PlayerConfig     `mapstructure:"player"`
	Share      ShareConfig      `mapstructure:"share"`
	NowPlaying NowPlayingConfig `mapstructure:"now_playing"`
	Downloads  DownloadsConfig  `mapstructure:"downloads"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds streaming backend configuration
type ServerConfig struct {
	URL        string `mapstructure:"url"`         // Webhook base URL
	AccessCode string `mapstructure:"access_code"` // Shared access code checked client-side
}

// PlayerConfig holds audio player configuration
type PlayerConfig struct {
	Command    string   `mapstructure:"command"`     // mpv binary
	Args       []string `mapstructure:"args"`        // Extra args appended to the fixed set
	SocketPath string   `mapstructure:"socket_path"` // IPC socket, empty = per-user default
}

// ShareConfig holds share-link configuration
type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"` // Public web origin prefixed to copied links
}

// NowPlayingConfig holds the now-playing file publisher configuration
type NowPlayingConfig struct {
	File string `mapstructure:"file"` // Empty disables publication
}

// DownloadsConfig holds track download configuration
type DownloadsConfig struct {
	Dir string `mapstructure:"dir"` // Where downloaded audio files land
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			URL:        "",
			AccessCode: "",
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{},
		},
		Share: ShareConfig{
			BaseURL: "",
		},
		NowPlaying: NowPlayingConfig{
			File: "",
		},
		Downloads: DownloadsConfig{
			Dir: filepath.Join(home, "Music", "wax"),
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
		return filepath.Join(os.Getenv("APPDATA"), "wax", "wax.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "wax", "wax.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "wax")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "wax")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "wax", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "wax", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("WAX")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.access_code", cfg.Server.AccessCode)

	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)
	viper.Set("player.socket_path", cfg.Player.SocketPath)

	viper.Set("share.base_url", cfg.Share.BaseURL)
	viper.Set("now_playing.file", cfg.NowPlaying.File)
	viper.Set("downloads.dir", cfg.Downloads.Dir)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// CachePath returns the cache directory path
func CachePath() string {
	return defaultCachePath()
}

// ClearCache removes all cached data
func ClearCache() error {
	if err := os.RemoveAll(defaultCachePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
