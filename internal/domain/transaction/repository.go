package transaction

import (
	"context"
)

// Repository defines the interface for transaction data access. Every call
// is scoped to userID; rows owned by someone else are apperr.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateTransactionParams) (*Transaction, error)
	GetByID(ctx context.Context, userID, id string) (*Transaction, error)
	// List returns one page ordered by date then creation time, newest
	// first, plus the number of rows matching the filters.
	List(ctx context.Context, userID string, params ListParams) ([]*Transaction, int, error)
	Update(ctx context.Context, userID, id string, params UpdateTransactionParams) (*Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}
