package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

// Service computes read-only aggregates over one user's transactions.
// The clock is read once per call so every part of a report shares the same "today".
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a report service. The calendar date of now() in its
// own location is "today"; nil means time.Now.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// Summary returns income and expense totals, the per-category breakdown for
// the resolved range and the most recent transactions.
func (s *Service) Summary(ctx context.Context, userID string, params SummaryParams) (*Summary, error) {
	r, err := ResolveRange(s.now(), params)
	if err != nil {
		return nil, err
	}

	var (
		income, expense decimal.Decimal
		breakdown       []CategoryTotal
		recent          []*transaction.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = s.repo.SumByType(gctx, userID, category.TypeIncome, r)
		return err
	})
	g.Go(func() error {
		var err error
		expense, err = s.repo.SumByType(gctx, userID, category.TypeExpense, r)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.repo.CategoryBreakdown(gctx, userID, r)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.repo.Recent(gctx, userID, recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if breakdown == nil {
		breakdown = []CategoryTotal{}
	}
	if recent == nil {
		recent = []*transaction.Transaction{}
	}

	return &Summary{
		Summary: Totals{
			TotalIncome:   income,
			TotalExpenses: expense,
			NetIncome:     income.Sub(expense),
			Period:        r,
		},
		CategoryBreakdown:  breakdown,
		RecentTransactions: recent,
	}, nil
}

// Trends returns monthly income and expense sums for the trailing months.
// Months without transactions are absent, not zero.
func (s *Service) Trends(ctx context.Context, userID string, months int) (*Trends, error) {
	if months < MinTrendMonths || months > MaxTrendMonths {
		return nil, apperr.Validation("months must be between %d and %d", MinTrendMonths, MaxTrendMonths)
	}

	since := monthsBefore(transaction.DateOf(s.now()), months)

	totals, err := s.repo.MonthlyTotals(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []MonthTotal{}
	}

	return &Trends{Months: months, Since: since, Trends: totals}, nil
}
