// Command server runs the travelvault API.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/travelvault/internal/config"
	"github.com/sakif/travelvault/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is not set; refusing to start without a signing key")
		os.Exit(1)
	}

	// Make sure the database directory exists before sqlite tries to
	// create the file in it.
	if cfg.DBPath != "memory" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	if cfg.AviationStackKey == "" {
		logger.Warn("AVIATIONSTACK_API_KEY not set; flight autofill is disabled")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
