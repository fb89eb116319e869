package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Addr            string        `env:"BOARD_ADDR"`
	Store           string        `env:"BOARD_STORE,default=sqlite"`
	DBPath          string        `env:"BOARD_DB,default=board.db"`
	BasePath        string        `env:"BOARD_BASE_PATH"`
	Lang            string        `env:"BOARD_LANG,default=en"`
	LogLevel        string        `env:"BOARD_LOG_LEVEL,default=info"`
	LogFormat       string        `env:"BOARD_LOG_FORMAT,default=text"`
	Seed            bool          `env:"BOARD_SEED,default=false"`
	CORSOrigins     string        `env:"BOARD_CORS_ORIGINS,default=*"`
	ShutdownTimeout time.Duration `env:"BOARD_SHUTDOWN_TIMEOUT,default=5s"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv decodes the configuration from the process environment only.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	if cfg.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Addr = ":" + port
		} else {
			cfg.Addr = ":8080"
		}
	}
	cfg.BasePath = normalizeBasePath(cfg.BasePath)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []string
	switch c.Store {
	case StoreSQLite, StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("BOARD_STORE must be %q or %q, got %q", StoreSQLite, StoreMemory, c.Store))
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		problems = append(problems, "BOARD_DB is required for the sqlite store")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("BOARD_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AllowedOrigins splits CORSOrigins on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
