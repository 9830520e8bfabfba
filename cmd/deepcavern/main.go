// Package main is the entry point for Deep Cavern.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/deepcavern/internal/game"
	"github.com/samdwyer/deepcavern/internal/logging"
	"github.com/samdwyer/deepcavern/internal/telemetry"
	"github.com/samdwyer/deepcavern/internal/ui"
)

const configFile = "deepcavern.toml"

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logging.Init(cfg.LogLevel, cfg.LogFormat, logFile)

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, cfg.TelemetryEndpoint)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

func run(ctx context.Context, cfg game.Config) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen)
	g, err := game.New(ctx, cfg, renderer)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	return ui.NewApp(screen, renderer, g).Run(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DEEPCAVERN_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_DEEPCAVERN_DATASET")
	if dataset == "" {
		dataset = "deepcavern"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
