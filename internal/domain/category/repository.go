package category

import (
	"context"
)

// Repository is scoped by owner: a category belonging to another user
// behaves exactly like a missing one (apperr.ErrNotFound).
type Repository interface {
	Create(ctx context.Context, userID string, params CreateCategoryParams) (*Category, error)
	GetByID(ctx context.Context, userID, id string) (*Category, error)
	ListByUserID(ctx context.Context, userID string) ([]*Category, error)
	Update(ctx context.Context, userID, id string, params UpdateCategoryParams) (*Category, error)
	Delete(ctx context.Context, userID, id string) error
	CountTransactions(ctx context.Context, userID, id string) (int, error)
}
