package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lms-theme-renderer/internal/config"
	"lms-theme-renderer/internal/db"
	"lms-theme-renderer/internal/importer"
	"lms-theme-renderer/internal/repository/category"
	"lms-theme-renderer/pkg/logger"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a course category CSV (id,parent_id,name,visible,sort_order)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel).WithField("cmd", "importer")
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, log)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, category.NewPostgres(pool))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed after %d categories: %v", count, err)
	}

	fmt.Printf("Imported %d categories in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
