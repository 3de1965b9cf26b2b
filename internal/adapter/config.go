package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "cinelist"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Reviews ReviewsConfig `mapstructure:"reviews"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds movie catalog API configuration
type CatalogConfig struct {
	URL               string        `mapstructure:"url"`     // optional, defaults to https://{host}
	Host              string        `mapstructure:"host"`    // X-RapidAPI-Host
	APIKey            string        `mapstructure:"api_key"` // X-RapidAPI-Key
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// ReviewsConfig holds review store configuration
type ReviewsConfig struct {
	DSN     string `mapstructure:"dsn"`     // PostgreSQL connection string; empty disables reviews
	Migrate bool   `mapstructure:"migrate"` // apply schema migrations at startup
}

// StorageConfig holds local storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // directory for the local database; empty = memory only
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
			Host:              "moviesdatabase.p.rapidapi.com",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
		},
		Reviews: ReviewsConfig{
			Migrate: true,
		},
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// LoadConfig loads configuration from file and environment. A .env file in the
// working directory is read first; variables already set take precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. CINELIST_CATALOG_API_KEY
	v.SetEnvPrefix("CINELIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// bindEnv registers every key so AutomaticEnv can see it during Unmarshal
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"catalog.url", "catalog.host", "catalog.api_key", "catalog.timeout", "catalog.requests_per_second",
		"reviews.dsn", "reviews.migrate",
		"storage.path",
		"logging.file", "logging.level",
	} {
		_ = v.BindEnv(key)
	}
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v.Set("catalog.url", cfg.Catalog.URL)
	v.Set("catalog.host", cfg.Catalog.Host)
	v.Set("catalog.api_key", cfg.Catalog.APIKey)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("catalog.requests_per_second", cfg.Catalog.RequestsPerSecond)

	v.Set("reviews.dsn", cfg.Reviews.DSN)
	v.Set("reviews.migrate", cfg.Reviews.Migrate)

	v.Set("storage.path", cfg.Storage.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the catalog host and API key are set
func (c *Config) IsConfigured() bool {
	return c.Catalog.Host != "" && c.Catalog.APIKey != ""
}

// ReviewsEnabled returns true if a review store DSN is set
func (c *Config) ReviewsEnabled() bool {
	return strings.TrimSpace(c.Reviews.DSN) != ""
}
