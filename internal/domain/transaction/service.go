package transaction

import (
	"context"
	"time"

	"fintrack/internal/domain/category"
)

// CategoryLookup resolves a category owned by userID.
type CategoryLookup interface {
	Get(ctx context.Context, userID, id string) (*category.Category, error)
}

// Service contains the business logic for transaction operations
type Service struct {
	repo       Repository
	categories CategoryLookup
	now        func() time.Time
}

// NewService creates a new transaction service. The calendar date of now()
// in its own location is used as "today"; nil means time.Now.
func NewService(repo Repository, categories CategoryLookup, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, categories: categories, now: now}
}

func (s *Service) List(ctx context.Context, userID string, params ListParams) (*Page, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	txns, total, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []*Transaction{}
	}

	return &Page{
		Transactions: txns,
		Pagination:   NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Create records a transaction against one of the user's own categories.
func (s *Service) Create(ctx context.Context, userID string, params CreateTransactionParams) (*Transaction, error) {
	params.Normalize(s.now())
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.categories.Get(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, params)
}

// Update applies the allow-listed fields. A new category must also belong to userID.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateTransactionParams) (*Transaction, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		if _, err := s.categories.Get(ctx, userID, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, userID, id, params)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
