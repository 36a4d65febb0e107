// Package config assembles runtime configuration from defaults, an
// optional YAML file, and environment variables, in that order of
// precedence (env wins).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Postgres holds connection settings for the durable store.
type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN renders the settings as a pgx-compatible connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// Qdrant holds the vector store endpoint.
type Qdrant struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// BaseURL renders the HTTP endpoint of the Qdrant instance.
func (q Qdrant) BaseURL() string {
	return fmt.Sprintf("http://%s:%s", q.Host, q.Port)
}

// Config is the full runtime configuration of the syncer.
type Config struct {
	Postgres Postgres `yaml:"postgres"`
	Qdrant   Qdrant   `yaml:"qdrant"`
	// DaysBack is the default lookback window in days.
	DaysBack int `yaml:"days_back"`
}

// Default returns the local-development configuration.
func Default() *Config {
	return &Config{
		Postgres: Postgres{
			Host:     "localhost",
			Port:     "5432",
			Database: "upsc_postgres",
			User:     "upsc_db_admin",
			Password: "",
			SSLMode:  "disable",
		},
		Qdrant: Qdrant{
			Host: "localhost",
			Port: "6333",
		},
		DaysBack: 7,
	}
}

// Load builds the configuration. path may be empty (no file overlay);
// a named file that is missing is an error, since the operator asked
// for it explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.DaysBack <= 0 {
		return nil, fmt.Errorf("days_back must be positive, got %d", cfg.DaysBack)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.Postgres.Host, "POSTGRES_HOST")
	setIfPresent(&c.Postgres.Port, "POSTGRES_PORT")
	setIfPresent(&c.Postgres.Database, "POSTGRES_DB")
	setIfPresent(&c.Postgres.User, "POSTGRES_USER")
	setIfPresent(&c.Postgres.Password, "POSTGRES_PASSWORD")
	setIfPresent(&c.Postgres.SSLMode, "POSTGRES_SSLMODE")
	setIfPresent(&c.Qdrant.Host, "QDRANT_HOST")
	setIfPresent(&c.Qdrant.Port, "QDRANT_PORT")

	if v := os.Getenv("SYNC_DAYS_BACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DaysBack = n
		}
	}
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
