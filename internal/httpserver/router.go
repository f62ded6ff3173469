package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/layout"
	"lms-theme-renderer/internal/metric"
	"lms-theme-renderer/internal/service/theme"
	"lms-theme-renderer/pkg/logger"
)

type ThemeRepo interface {
	GetByKey(ctx context.Context, key string) (*domain.Theme, error)
}

type ThemeService interface {
	HeaderCategories(ctx context.Context, t *domain.Theme) (theme.Fragment, error)
	Footer(ctx context.Context, t *domain.Theme, lang string) (theme.Fragment, error)
	BlockRegions(ctx context.Context, t *domain.Theme, editing bool) (theme.Fragment, error)
	Assets(ctx context.Context, t *domain.Theme) (layout.Assets, error)
	LoginPage(ctx context.Context, t *domain.Theme) (layout.LoginPage, error)
	Header(ctx context.Context, t *domain.Theme, page domain.Page, courseID int64, canEdit bool) (layout.Header, error)
	ActivityNavigation(ctx context.Context, t *domain.Theme, page domain.Page, courseID, cmID int64) (theme.Fragment, error)
	CompletionFooter(ctx context.Context, t *domain.Theme, page domain.Page, courseID, cmID int64) (theme.Fragment, error)
	UpdateSetting(ctx context.Context, t *domain.Theme, name, value string) error
}

// Deps carries the collaborators of the HTTP layer.
type Deps struct {
	ThemeRepo   ThemeRepo
	ThemeSvc    ThemeService
	Metrics     prometheus.Gatherer
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(log logrus.FieldLogger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ThemeRepo == nil || deps.ThemeSvc == nil {
		return nil, errors.New("theme repository and service are required")
	}
	if log == nil {
		log = logger.Discard()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), logger.GinLogger(log), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(metric.GetHandlerForRegistry(deps.Metrics)))
	}

	h := &themeHandler{svc: deps.ThemeSvc, logger: log}
	themes := router.Group("/themes/:themeKey", themeMiddleware(deps.ThemeRepo))
	{
		themes.GET("/header/categories", h.headerCategories)
		themes.GET("/footer", h.footer)
		themes.GET("/blocks", h.blockRegions)
		themes.GET("/assets", h.assets)
		themes.GET("/login", h.loginPage)
		themes.PUT("/settings/:name", h.updateSetting)
		themes.GET("/courses/:courseID/header", h.courseHeader)
		themes.GET("/courses/:courseID/modules/:cmID/navigation", h.activityNavigation)
		themes.GET("/courses/:courseID/modules/:cmID/completion", h.completionFooter)
	}

	return router, nil
}
