package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Query   QueryConfig   `mapstructure:"query"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig points at the static catalog source
type CatalogConfig struct {
	// SourcePath is a .db bolt snapshot or a .json catalog file
	SourcePath string `mapstructure:"source_path"`
}

// CacheConfig holds result-cache expiry tiers
type CacheConfig struct {
	DefaultTTL time.Duration `mapstructure:"default_ttl"` // point lookups
	QueryTTL   time.Duration `mapstructure:"query_ttl"`   // filtered pages, short
	StatsTTL   time.Duration `mapstructure:"stats_ttl"`   // aggregates, long
}

// QueryConfig holds pagination limits
type QueryConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			SourcePath: "",
		},
		Cache: CacheConfig{
			DefaultTTL: 5 * time.Minute,
			QueryTTL:   30 * time.Second,
			StatsTTL:   15 * time.Minute,
		},
		Query: QueryConfig{
			DefaultPageSize: 24,
			MaxPageSize:     100,
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
		return filepath.Join(os.Getenv("APPDATA"), "lobby", "lobby.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lobby", "lobby.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lobby")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lobby")
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
	viper.SetEnvPrefix("LOBBY")
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
