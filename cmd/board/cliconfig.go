package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rest1/board/internal/client"
)

const defaultBaseURL = "http://localhost:8080"

// CLIConfig holds the CLI client configuration persisted to disk.
type CLIConfig struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

func boardDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".board")
}

func cliConfigPath() string {
	return filepath.Join(boardDir(), "config.json")
}

// loadCLIConfig returns the saved config, or an empty one when none exists.
func loadCLIConfig() (CLIConfig, error) {
	data, err := os.ReadFile(cliConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, err
	}
	var cfg CLIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parse %s: %w", cliConfigPath(), err)
	}
	return cfg, nil
}

func saveCLIConfig(cfg CLIConfig) error {
	if err := os.MkdirAll(boardDir(), 0o700); err != nil {
		return err
	}
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return os.WriteFile(cliConfigPath(), data, 0o600)
}

// resolveBaseURL picks --url, then the saved URL, then the default.
func resolveBaseURL(cfg CLIConfig) string {
	switch {
	case baseURLFlag != "":
		return baseURLFlag
	case cfg.BaseURL != "":
		return cfg.BaseURL
	default:
		return defaultBaseURL
	}
}

// loadClient returns a client for the configured server carrying the saved
// API key, if any.
func loadClient() (*client.Client, CLIConfig, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, CLIConfig{}, err
	}
	c := client.New(resolveBaseURL(cfg))
	c.APIKey = cfg.APIKey
	return c, cfg, nil
}

func loadAuthenticatedClient() (*client.Client, error) {
	c, cfg, err := loadClient()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, errors.New("not logged in - run 'board login'")
	}
	return c, nil
}
