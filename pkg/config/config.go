package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Settings
	SettingsPath string

	// Dataset
	DatasetPath string
	SeedEnabled bool
	SeedRebase  bool

	// MCP
	MCPAddr            string
	MCPAuthToken       string
	MCPShutdownTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		SettingsPath: getEnv("TASKFLOW_SETTINGS_PATH", defaultSettingsPath()),

		DatasetPath: getEnv("TASKFLOW_DATASET_PATH", ""),
		SeedEnabled: getBoolEnv("TASKFLOW_SEED_ENABLED", true),
		SeedRebase:  getBoolEnv("TASKFLOW_SEED_REBASE", true),

		MCPAddr:            getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken:       getEnv("MCP_AUTH_TOKEN", ""),
		MCPShutdownTimeout: getDurationEnv("MCP_SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesSettingsFile reports whether settings are kept in a file. The
// special path "-" keeps them in memory for the current run.
func (c *Config) UsesSettingsFile() bool {
	return c.SettingsPath != "" && c.SettingsPath != "-"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskflow", "settings.toml")
	}
	return filepath.Join(home, ".taskflow", "settings.toml")
}
