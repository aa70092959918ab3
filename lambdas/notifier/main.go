package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
)

// newRelay builds the clients shared by every invocation of a warm container.
func newRelay(ctx context.Context, cfg Config) (*Relay, error) {
	// Load AWS configuration
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &Relay{
		WebhookURL: cfg.WebhookURL,
		Tasks:      databasemigrationservice.NewFromConfig(awsCfg),
		Client:     &http.Client{},
	}, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("unable to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogLevel))

	relay, err := newRelay(context.Background(), cfg)
	if err != nil {
		slog.Error("unable to load SDK config", "error", err)
		os.Exit(1)
	}

	lambda.Start(relay.Handle)
}
