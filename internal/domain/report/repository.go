package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
)

// Repository is the read-only aggregate view over a user's transactions.
type Repository interface {
	// SumByType returns the total amount of one type inside r, zero when no rows match.
	SumByType(ctx context.Context, userID string, typ category.Type, r DateRange) (decimal.Decimal, error)
	// CategoryBreakdown groups r by (type, category). Income groups come
	// first, then each type is ordered by total descending, then category name.
	CategoryBreakdown(ctx context.Context, userID string, r DateRange) ([]CategoryTotal, error)
	// Recent returns the newest transactions regardless of date range.
	Recent(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error)
	// MonthlyTotals groups rows dated on or after since by (month, type), month ascending.
	MonthlyTotals(ctx context.Context, userID string, since time.Time) ([]MonthTotal, error)
}
