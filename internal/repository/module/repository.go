package module

import (
	"context"

	"lms-theme-renderer/internal/domain"
)

type Repository interface {
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	ListByCourse(ctx context.Context, courseID int64) ([]domain.CourseModule, error)
}
