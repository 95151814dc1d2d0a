package investment

import (
	"context"
)

// Repository is scoped by owner: an investment belonging to another user
// behaves exactly like a missing one (apperr.ErrNotFound).
type Repository interface {
	Create(ctx context.Context, userID string, params CreateInvestmentParams) (*Investment, error)
	GetByID(ctx context.Context, userID, id string) (*Investment, error)
	ListByUserID(ctx context.Context, userID string) ([]*Investment, error)
	Update(ctx context.Context, userID, id string, params UpdateInvestmentParams) (*Investment, error)
	Delete(ctx context.Context, userID, id string) error
}
