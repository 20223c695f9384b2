package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Import persistence modes accepted by IMPORT_MODE.
const (
	ImportModeAll  = "all"
	ImportModeLast = "last"
)

// Config holds all application configuration.
type Config struct {
	Database   DatabaseConfig
	HTTP       HTTPConfig
	RandomUser RandomUserConfig
	Import     ImportConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// HTTPConfig contains web server settings.
type HTTPConfig struct {
	Address string // listen address (e.g., ":5000")
}

// RandomUserConfig points at the remote profile generator.
type RandomUserConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ImportConfig controls startup seeding and on-demand imports.
type ImportConfig struct {
	SeedCount int    // users fetched at startup when the table is empty; 0 disables
	MaxCount  int    // upper bound for a single num_users request
	Mode      string // ImportModeAll or ImportModeLast
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory. Unset variables fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := getEnvDuration("RANDOMUSER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt("SEED_COUNT", 1000)
	if err != nil {
		return nil, err
	}
	maxCount, err := getEnvInt("IMPORT_MAX", 5000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "users.db"),
		},
		HTTP: HTTPConfig{
			Address: getEnv("HTTP_ADDRESS", ":5000"),
		},
		RandomUser: RandomUserConfig{
			BaseURL: getEnv("RANDOMUSER_BASE_URL", "https://randomuser.me"),
			Timeout: timeout,
		},
		Import: ImportConfig{
			SeedCount: seed,
			MaxCount:  maxCount,
			Mode:      getEnv("IMPORT_MODE", ImportModeAll),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.RandomUser.BaseURL == "":
		return fmt.Errorf("RANDOMUSER_BASE_URL must not be empty")
	case c.RandomUser.Timeout <= 0:
		return fmt.Errorf("RANDOMUSER_TIMEOUT must be positive, got %s", c.RandomUser.Timeout)
	case c.Import.SeedCount < 0:
		return fmt.Errorf("SEED_COUNT must not be negative, got %d", c.Import.SeedCount)
	case c.Import.MaxCount < 1:
		return fmt.Errorf("IMPORT_MAX must be at least 1, got %d", c.Import.MaxCount)
	case c.Import.SeedCount > c.Import.MaxCount:
		return fmt.Errorf("SEED_COUNT (%d) must not exceed IMPORT_MAX (%d)", c.Import.SeedCount, c.Import.MaxCount)
	case c.Import.Mode != ImportModeAll && c.Import.Mode != ImportModeLast:
		return fmt.Errorf("IMPORT_MODE must be %q or %q, got %q", ImportModeAll, ImportModeLast, c.Import.Mode)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

// String returns a one-line summary of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, RandomUser: %s (timeout %s), Seed: %d, ImportMax: %d, Mode: %s}",
		c.Database.Path, c.HTTP.Address, c.RandomUser.BaseURL, c.RandomUser.Timeout,
		c.Import.SeedCount, c.Import.MaxCount, c.Import.Mode)
}
