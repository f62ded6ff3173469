package module

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/pkg/logger"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger logrus.FieldLogger
}

func NewPostgres(pool *pgxpool.Pool, log logrus.FieldLogger) Repository {
	if log == nil {
		log = logger.Discard()
	}
	return &postgresRepo{pool: pool, logger: log}
}

func (r *postgresRepo) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	const q = `
SELECT id, COALESCE(category_id, 0), fullname, shortname, enable_completion
FROM courses
WHERE id = $1
`
	var c domain.Course
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.CategoryID, &c.FullName, &c.ShortName, &c.EnableCompletion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) ListByCourse(ctx context.Context, courseID int64) ([]domain.CourseModule, error) {
	const q = `
SELECT id, course_id, name, modname, position, visible, user_visible, stealth, COALESCE(url, ''), completion
FROM course_modules
WHERE course_id = $1
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, courseID)
	if err != nil {
		r.logger.WithError(err).WithField("course_id", courseID).Error("module repo: list")
		return nil, err
	}
	defer rows.Close()

	var result []domain.CourseModule
	for rows.Next() {
		var m domain.CourseModule
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Name, &m.ModName, &m.Position, &m.Visible, &m.UserVisible, &m.Stealth, &m.URL, &m.Completion); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{"course_id": courseID, "count": len(result)}).Debug("module repo: listed")
	return result, nil
}
