package main

import (
	"context"

	"github.com/joho/godotenv"

	"lms-theme-renderer/internal/config"
	"lms-theme-renderer/internal/db"
	"lms-theme-renderer/internal/seed"
	"lms-theme-renderer/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel).WithField("cmd", "seed")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, log)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		log.Fatalf("seed apply: %v", err)
	}

	log.Info("seed applied")
}
