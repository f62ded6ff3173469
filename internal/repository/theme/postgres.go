package theme

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

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Theme, error) {
	const q = `
SELECT id::text, key, name, created_at
FROM themes
WHERE key = $1
`
	var t domain.Theme
	err := r.pool.QueryRow(ctx, q, key).Scan(&t.ID, &t.Key, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) Settings(ctx context.Context, themeID string) (map[string]string, error) {
	const q = `
SELECT name, value
FROM theme_settings
WHERE theme_id = $1
`
	rows, err := r.pool.Query(ctx, q, themeID)
	if err != nil {
		r.logger.WithError(err).WithField("theme_id", themeID).Error("theme repo: list settings")
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		settings[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{"theme_id": themeID, "count": len(settings)}).Debug("theme repo: settings loaded")
	return settings, nil
}

func (r *postgresRepo) UpsertSetting(ctx context.Context, themeID, name, value string) error {
	const q = `
INSERT INTO theme_settings (theme_id, name, value)
VALUES ($1, $2, $3)
ON CONFLICT (theme_id, name) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, themeID, name, value)
	return err
}

func (r *postgresRepo) AreaFiles(ctx context.Context, contextID int64, component, area string) ([]domain.StoredFile, error) {
	const q = `
SELECT context_id, component, file_area, item_id, file_path, file_name
FROM theme_files
WHERE context_id = $1 AND component = $2 AND file_area = $3 AND file_name <> '.'
ORDER BY item_id, file_path, file_name
`
	rows, err := r.pool.Query(ctx, q, contextID, component, area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.StoredFile
	for rows.Next() {
		var f domain.StoredFile
		if err := rows.Scan(&f.ContextID, &f.Component, &f.FileArea, &f.ItemID, &f.FilePath, &f.FileName); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
