package category

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/shared/apperr"
)

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's categories ordered by name.
func (s *Service) List(ctx context.Context, userID string) ([]*Category, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Get returns a category owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Category, error) {
	if id == "" {
		return nil, apperr.NotFound("category")
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID string, params CreateCategoryParams) (*Category, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params.IsDefault = false

	return s.repo.Create(ctx, userID, params)
}

func (s *Service) Update(ctx context.Context, userID, id string, params UpdateCategoryParams) (*Category, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, userID, id, params)
}

// Delete removes a category. It is refused with apperr.ErrConflict while any
// transaction still references it.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	count, err := s.repo.CountTransactions(ctx, userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("cannot delete category with %d existing transactions", count)
	}

	return s.repo.Delete(ctx, userID, id)
}

// SeedDefaults creates the default categories for userID.
func (s *Service) SeedDefaults(ctx context.Context, userID string) error {
	for _, d := range Defaults {
		d.IsDefault = true
		if _, err := s.repo.Create(ctx, userID, d); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", d.Name, err)
		}
	}

	slog.DebugContext(ctx, "seeded default categories", "user_id", userID, "count", len(Defaults))
	return nil
}
