package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"lms-theme-renderer/internal/config"
	"lms-theme-renderer/internal/db"
	"lms-theme-renderer/internal/migrate"
	"lms-theme-renderer/pkg/logger"
)

func main() {
	var down int
	flag.IntVar(&down, "down", 0, "Number of migration steps to roll back instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel).WithField("cmd", "migrate")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, log)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if down > 0 {
		if err := migrate.Rollback(ctx, pool, down); err != nil {
			log.Fatalf("roll back migrations: %v", err)
		}
		log.Infof("rolled back %d migration(s)", down)
		return
	}

	version, err := migrate.Apply(ctx, pool)
	if err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	log.WithField("version", version).Info("migrations applied")
}
