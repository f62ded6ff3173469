package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/pkg/logger"
)

type ctxKey string

const (
	themeCtxKey     ctxKey = "theme"
	requestIDHeader        = "X-Request-ID"
)

// themeMiddleware resolves :themeKey and stores the theme on the request context.
func themeMiddleware(repo ThemeRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("themeKey"))
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorBody("theme key is required"))
			return
		}
		t, err := repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, errorBody("theme not found"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("theme lookup failed"))
			return
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), themeCtxKey, t))
		c.Next()
	}
}

func themeFromContext(ctx context.Context) (*domain.Theme, bool) {
	t, ok := ctx.Value(themeCtxKey).(*domain.Theme)
	return t, ok && t != nil
}

// requestIDMiddleware keeps a caller supplied X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func errorBody(msg string) gin.H {
	return gin.H{"statusCode": 0, "message": msg}
}
