package category

import (
	"context"

	"lms-theme-renderer/internal/domain"
)

// Repository returns categories flat; tree assembly is left to the caller.
type Repository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
