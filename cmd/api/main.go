package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"lms-theme-renderer/internal/cache"
	"lms-theme-renderer/internal/config"
	"lms-theme-renderer/internal/db"
	"lms-theme-renderer/internal/httpserver"
	"lms-theme-renderer/internal/metric"
	"lms-theme-renderer/internal/render"
	categoryrepo "lms-theme-renderer/internal/repository/category"
	modulerepo "lms-theme-renderer/internal/repository/module"
	themerepo "lms-theme-renderer/internal/repository/theme"
	categorysvc "lms-theme-renderer/internal/service/category"
	themesvc "lms-theme-renderer/internal/service/theme"
	"lms-theme-renderer/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel).WithField("cmd", "api")

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, log)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}

	deps := themesvc.Deps{
		Renderer: renderer,
		Metrics:  metric.NewRenderer(registry),
		Logger:   log,
		FileURL:  cfg.FileURLHost,
		SiteName: cfg.SiteName,
	}

	settingsCache, err := cache.New(cfg.RedisAddr, cfg.EnableCache, cfg.SettingsCacheTTL)
	if err != nil {
		log.WithError(err).Warn("settings cache unavailable, reading settings from postgres")
	} else if settingsCache.Enabled() {
		defer settingsCache.Close()
		deps.Cache = settingsCache
	}

	themeRepo := themerepo.NewPostgres(dbpool, log)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool), cfg.SiteURL)
	deps.Store = themeRepo
	deps.Categories = categoryService
	deps.Modules = modulerepo.NewPostgres(dbpool, log)
	themeService := themesvc.New(deps)

	srv, err := httpserver.New(cfg.HTTPAddr, log, dbpool, httpserver.Deps{
		ThemeRepo:   themeRepo,
		ThemeSvc:    themeService,
		Metrics:     registry,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		log.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		log.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	} else {
		log.Info("server stopped")
	}
}
