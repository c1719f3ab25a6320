package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"PORT,SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigins    []string `yaml:"cors_origins" env:"CORS_ORIGINS"`
		MaxUploadBytes int64    `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
		ReadTimeout    string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	Ingest struct {
		Token string `yaml:"token" env:"INGEST_TOKEN"`
		// SeedSample loads the bundled sample catalogue when the table is empty at startup.
		SeedSample bool `yaml:"seed_sample" env:"INGEST_SEED_SAMPLE"`
	} `yaml:"ingest"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from defaults, the YAML file (if present),
// a .env file (if present) and finally environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if file, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// .env never overrides variables already set in the process environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"*"}
	config.Server.MaxUploadBytes = 10 << 20
	config.Server.ReadTimeout = "30s"
	config.Server.WriteTimeout = "30s"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "coursequest"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.AutoMigrate = true

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database host or url is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime format: %w", err)
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server max upload bytes must be positive")
	}

	for name, d := range map[string]string{"read": config.Server.ReadTimeout, "write": config.Server.WriteTimeout} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid server %s timeout format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string.
// DATABASE_URL wins over the individual fields.
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// Duration parses a validated duration field, falling back to def.
func Duration(value string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return def
}
