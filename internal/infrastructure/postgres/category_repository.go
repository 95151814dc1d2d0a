package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/domain/category"
	"fintrack/internal/shared/apperr"
)

const categoryColumns = `id, user_id, name, type, color, icon, is_default, created_at, updated_at`

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row rowScanner) (*category.Category, error) {
	var c category.Category
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.Icon, &c.IsDefault,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, userID string, params category.CreateCategoryParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, type, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), userID, params.Name, params.Type, params.Color, params.Icon, params.IsDefault,
	))
	if err != nil {
		return nil, classify("create category", "category", err)
	}

	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*category.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("category")
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, classify("get category", "category", err)
	}

	return c, nil
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classify("list categories", "category", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperr.Unavailable("scan category", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("iterate categories", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, userID, id string, params category.UpdateCategoryParams) (*category.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("category")
	}

	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    color = COALESCE($2, color),
		    icon = COALESCE($3, icon),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, params.Name, params.Color, params.Icon, id, userID))
	if err != nil {
		return nil, classify("update category", "category", err)
	}

	return c, nil
}

// Delete relies on the ON DELETE RESTRICT foreign key as the last line
// against a transaction inserted after the service's count.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("category")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return classify("delete category", "category", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Unavailable("delete category", fmt.Errorf("rows affected: %w", err))
	}
	if rows == 0 {
		return apperr.NotFound("category")
	}

	return nil
}

func (r *CategoryRepository) CountTransactions(ctx context.Context, userID, id string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1 AND user_id = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&count); err != nil {
		return 0, classify("count category transactions", "category", err)
	}

	return count, nil
}
