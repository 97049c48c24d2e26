package main

import (
	"flag"
	"log/slog"
	"os"

	"guardianmed/config"
	logs "guardianmed/internal/infra/log"
	"guardianmed/internal/infra/persistence/migrations"
)

func main() {
	direction := flag.String("direction", migrations.DirectionUp, "migration direction: up or down")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		slog.Error("Failed to create logger", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Migrate == nil || cfg.Migrate.DatabaseURL == "" {
		logger.Error("migrate.databaseUrl is not set")
		os.Exit(1)
	}

	if err := migrations.Run(cfg.Migrate.DatabaseURL, *direction); err != nil {
		logger.Error("Migration failed", slog.String("direction", *direction), slog.Any("error", err))
		os.Exit(1)
	}

	version, dirty, err := migrations.Version(cfg.Migrate.DatabaseURL)
	if err != nil {
		logger.Error("Failed to read schema version", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Migration complete",
		slog.String("direction", *direction),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
}
