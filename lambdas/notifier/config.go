package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config is read from the Lambda environment on cold start.
type Config struct {
	// WebhookURL is the Teams incoming webhook. It is checked per invocation
	// so a missing value surfaces as a failed invocation rather than a crash loop.
	WebhookURL string     `env:"TEAMS_WEBHOOK_URL"`
	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
