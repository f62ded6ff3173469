package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lms-theme-renderer/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id, parent_id, name, visible, sort_order
FROM course_categories
ORDER BY sort_order ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Visible, &c.SortOrder); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO course_categories (id, parent_id, name, visible, sort_order)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET parent_id = EXCLUDED.parent_id,
    name = EXCLUDED.name,
    visible = EXCLUDED.visible,
    sort_order = EXCLUDED.sort_order
RETURNING id, parent_id, name, visible, sort_order
`
	var out domain.Category
	err := r.pool.QueryRow(ctx, q, c.ID, c.ParentID, c.Name, c.Visible, c.SortOrder).
		Scan(&out.ID, &out.ParentID, &out.Name, &out.Visible, &out.SortOrder)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
