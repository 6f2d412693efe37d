// Package config loads service configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting for the service.
type Config struct {
	HTTPPort int  `yaml:"HTTP_PORT"`
	Debug    bool `yaml:"DEBUG"`
	// AppRoot is the directory the debug fallback page lists. Resolved to
	// an absolute path once at load time.
	AppRoot       string   `yaml:"APP_ROOT"`
	DBDriver      string   `yaml:"DB_DRIVER"`
	DBHost        string   `yaml:"DB_HOST"`
	DBPort        int      `yaml:"DB_PORT"`
	DBUser        string   `yaml:"DB_USER"`
	DBPassword    string   `yaml:"DB_PASSWORD"`
	DBName        string   `yaml:"DB_NAME"`
	DBSSLMode     string   `yaml:"DB_SSLMODE"`
	SQLitePath    string   `yaml:"SQLITE_PATH"`
	KafkaBrokers  []string `yaml:"KAFKA_BROKERS"`
	Topic         string   `yaml:"TOPIC"`
	JWTSecret     string   `yaml:"JWT_SECRET"`
	AdminUser     string   `yaml:"ADMIN_USER"`
	AdminPassword string   `yaml:"ADMIN_PASSWORD"`
}

// DefaultPath is where Load looks when no path is given.
var DefaultPath = filepath.Join("internal", "company", "config", "config.yaml")

// Load reads the YAML file at path, applies environment overrides and
// fills in defaults. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets secrets and the debug switch be set outside the file.
func (cfg *Config) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DBPassword = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug = strings.EqualFold(v, "true") || v == "1"
	}
}

func (cfg *Config) applyDefaults() error {
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = 8080
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "companyboard.db"
	}
	if cfg.Topic == "" {
		cfg.Topic = "company-events"
	}
	if cfg.AppRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve app root: %w", err)
		}
		cfg.AppRoot = wd
	}
	abs, err := filepath.Abs(cfg.AppRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve app root: %w", err)
	}
	cfg.AppRoot = abs
	return nil
}
