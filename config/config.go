package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultTokenSecret signs tokens outside production when nothing else is configured
const DefaultTokenSecret = "manz-development-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBPath        string
	MigrationsDir string

	// Token signing
	TokenSecret string

	// Optional services. Empty values disable the feature.
	RedisURL     string
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads environment variables only; CI secrets arrive as TEST_* variables
func loadCIConfig(cfg *Config) {
	loadCommon(cfg, os.Getenv)
	cfg.DBPassword = firstNonEmpty(os.Getenv("DB_PASSWORD"), os.Getenv("TEST_DB_PASSWORD"))
	cfg.TokenSecret = firstNonEmpty(os.Getenv("TOKEN_SECRET"), os.Getenv("TEST_TOKEN_SECRET"), DefaultTokenSecret)
	cfg.RedisURL = firstNonEmpty(os.Getenv("REDIS_URL"), os.Getenv("TEST_REDIS_URL"))
}

// loadDevConfig prefers environment variables, then Docker secrets, then local defaults
func loadDevConfig(cfg *Config) {
	loadCommon(cfg, lookup)
	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "manz.db"
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = DefaultTokenSecret
	}
}

// loadProdConfig reads environment variables and Docker secrets without local defaults
func loadProdConfig(cfg *Config) {
	loadCommon(cfg, lookup)
}

func loadCommon(cfg *Config, get func(string) string) {
	cfg.ServerHost = get("SERVER_HOST")
	cfg.ServerPort = firstNonEmpty(get("SERVER_PORT"), "8080")
	cfg.CORSOrigins = splitList(get("CORS_ORIGINS"))

	cfg.DBDriver = strings.ToLower(get("DB_DRIVER"))
	cfg.DBHost = firstNonEmpty(get("DB_HOST"), "localhost")
	cfg.DBPort = firstNonEmpty(get("DB_PORT"), "5432")
	cfg.DBUser = get("DB_USER")
	cfg.DBPassword = get("DB_PASSWORD")
	cfg.DBName = firstNonEmpty(get("DB_NAME"), "manz")
	cfg.DBSSLMode = firstNonEmpty(get("DB_SSL_MODE"), "disable")
	cfg.DBPath = get("DB_PATH")
	cfg.MigrationsDir = firstNonEmpty(get("MIGRATIONS_DIR"), "migrations")

	cfg.TokenSecret = get("TOKEN_SECRET")
	cfg.RedisURL = get("REDIS_URL")
	cfg.S3BucketName = get("S3_BUCKET_NAME")
	cfg.AWSRegion = get("AWS_REGION")

	if cfg.DBDriver == "" && cfg.DBUser != "" {
		cfg.DBDriver = "postgres"
	}
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup returns the environment variable name or the Docker secret of the
// same name in lower case.
func lookup(name string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return readSecret(strings.ToLower(name))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("failed to read secret %s: %v", name, err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
