package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/openjusticia/corrupcion-api/internal/config"
	"github.com/openjusticia/corrupcion-api/internal/database"
	"github.com/openjusticia/corrupcion-api/internal/loader"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

func main() {
	dataDir := flag.String("data", "", "directory with the CSV extracts (defaults to DATA_DIR)")
	schedule := flag.String("schedule", "", "cron expression for periodic loads; empty runs once and exits")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
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

	l := loader.New(db, cfg.DataDir, log)

	if *schedule == "" {
		if _, err := l.Run(context.Background()); err != nil {
			log.Fatal("load failed", "error", err)
		}
		return
	}

	c := cron.New()
	_, err = c.AddFunc(*schedule, func() {
		if _, err := l.Run(context.Background()); err != nil {
			log.Error("scheduled load failed", "error", err)
		}
	})
	if err != nil {
		log.Fatal("invalid schedule", "schedule", *schedule, "error", err)
	}

	log.Info("loader running on schedule", "schedule", *schedule, "data_dir", cfg.DataDir)
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	log.Info("loader stopped")
}
