package main

import (
	"fmt"
	"os"

	"github.com/jonathan/career-coach/internal/config"
)

// mergeCLIConfig resolves the effective configuration for a command: CLI
// flags take priority, then the config file, then environment variables.
func mergeCLIConfig(configPath string, flags config.Config) (config.Config, error) {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	cfg := flags.MergeWithDefaults(fileCfg)

	// Environment fallbacks
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if cfg.DatabaseURL == "" {
		return config.Config{}, fmt.Errorf("database URL is required (--db-url flag or DATABASE_URL env var)")
	}
	if cfg.UserID == "" {
		return config.Config{}, fmt.Errorf("user id is required (--user flag or config file)")
	}

	return cfg, nil
}
