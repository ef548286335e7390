// Package config содержит логику чтения конфигурации сервиса Gestor.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultDataDir    = "data"
)

// Config содержит параметры конфигурации сервиса Gestor.
type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseURI   string `env:"DATABASE_URI"`
	DataDir       string `env:"DATA_DIR"`
	SessionSecret string `env:"SESSION_SECRET"`
}

// UsePostgres сообщает, задана ли строка подключения к PostgreSQL.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURI != ""
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envDataDir := cfg.DataDir
	envSessionSecret := cfg.SessionSecret

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.DataDir, "f", defaultDataDir, "directory for file storage")
	flag.StringVar(&cfg.SessionSecret, "s", "", "session cookie signing secret")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envDataDir != "" {
		cfg.DataDir = envDataDir
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}

	return cfg, nil
}
