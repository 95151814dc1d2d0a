package investment

import (
	"context"

	"fintrack/internal/shared/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's investments, newest purchase first.
func (s *Service) List(ctx context.Context, userID string) ([]*Investment, error) {
	investments, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if investments == nil {
		investments = []*Investment{}
	}
	return investments, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Investment, error) {
	if id == "" {
		return nil, apperr.NotFound("investment")
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID string, params CreateInvestmentParams) (*Investment, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, params)
}

func (s *Service) Update(ctx context.Context, userID, id string, params UpdateInvestmentParams) (*Investment, error) {
	if id == "" {
		return nil, apperr.NotFound("investment")
	}
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, userID, id, params)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return apperr.NotFound("investment")
	}
	return s.repo.Delete(ctx, userID, id)
}
