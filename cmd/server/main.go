package main

import (
	"fmt"
	"os"

	"github.com/openjusticia/corrupcion-api/internal/config"
	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/internal/server"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}

	srv := server.New(cfg, db, log)
	if err := srv.Run(); err != nil {
		log.Fatal("server error", "error", err)
	}
}
