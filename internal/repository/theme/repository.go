package theme

import (
	"context"

	"lms-theme-renderer/internal/domain"
)

type Repository interface {
	GetByKey(ctx context.Context, key string) (*domain.Theme, error)
	Settings(ctx context.Context, themeID string) (map[string]string, error)
	UpsertSetting(ctx context.Context, themeID, name, value string) error
	AreaFiles(ctx context.Context, contextID int64, component, area string) ([]domain.StoredFile, error)
}
