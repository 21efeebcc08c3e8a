package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Port int    `yaml:"port" validate:"min=1,max=65535"`
	Env  string `yaml:"env"`

	// CORS
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Rate limiting
	RateLimitPerSecond int `yaml:"rate_limit_per_second" validate:"gte=0"`
	RateLimitBurst     int `yaml:"rate_limit_burst" validate:"gte=0"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`

	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects and addresses the blob backend.
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"required,oneof=memory file redis postgres mysql sqlite"`
	Key     string `yaml:"key" validate:"required"`

	Dir         string `yaml:"dir" validate:"required_if=Backend file"`
	RedisURL    string `yaml:"redis_url" validate:"required_if=Backend redis"`
	PostgresURL string `yaml:"postgres_url" validate:"required_if=Backend postgres"`
	MySQLDSN    string `yaml:"mysql_dsn" validate:"required_if=Backend mysql"`
	SQLitePath  string `yaml:"sqlite_path" validate:"required_if=Backend sqlite"`
}

// IsProduction reports whether the service runs with production logging
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func defaults() *Config {
	return &Config{
		Port:               8080,
		Env:                "development",
		AllowedOrigins:     []string{"http://localhost:3000"},
		RateLimitPerSecond: 100,
		RateLimitBurst:     200,
		ShutdownTimeout:    10 * time.Second,
		Storage: StorageConfig{
			Backend:    "file",
			Key:        "mmba_leaderboard_demo",
			Dir:        "data",
			SQLitePath: "leaderboard.db",
		},
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from an optional YAML file, then applies
// environment overrides. It returns an error if the result does not validate.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)

	cfg.RateLimitPerSecond = getEnvInt("RATE_LIMIT_PER_SECOND", cfg.RateLimitPerSecond)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	// CORS
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Key = getEnv("STORAGE_KEY", cfg.Storage.Key)
	cfg.Storage.Dir = getEnv("STORAGE_DIR", cfg.Storage.Dir)
	cfg.Storage.RedisURL = getEnv("REDIS_URL", cfg.Storage.RedisURL)
	cfg.Storage.PostgresURL = getEnv("POSTGRES_URL", cfg.Storage.PostgresURL)
	cfg.Storage.MySQLDSN = getEnv("MYSQL_DSN", cfg.Storage.MySQLDSN)
	cfg.Storage.SQLitePath = getEnv("SQLITE_PATH", cfg.Storage.SQLitePath)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
