package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/leengari/flatdb/internal/config"
	"github.com/leengari/flatdb/internal/logging"
	"github.com/leengari/flatdb/internal/repl"
	"github.com/leengari/flatdb/internal/storage/manager"
)

func main() {
	manifest := flag.String("manifest", "flatdb.yaml", "Path to the tables manifest")
	envFile := flag.String("env", "", "Optional .env file to load before the manifest")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Overload(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load env file %s: %v\n", *envFile, err)
			os.Exit(1)
		}
	} else {
		// Best effort: a .env in the working directory is optional.
		_ = godotenv.Load()
	}

	cfg, err := config.Load(*manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		os.Exit(1)
	}

	logger, closeFn := logging.SetupLogger(cfg.LogLevel, cfg.SeqURL)
	defer closeFn()
	slog.SetDefault(logger)

	registry := manager.NewRegistry(cfg, logger)

	// Persist all dirty tables on shutdown.
	defer func() {
		slog.Info("Shutting down - saving tables...")
		registry.SaveAll()
	}()

	slog.Info("flatdb ready",
		"manifest", *manifest,
		"tables", len(cfg.Tables),
	)

	repl.Start(registry)
}
