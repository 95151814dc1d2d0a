package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/report"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// rangeFilter restricts alias t to a report.DateRange; NULL bounds are open.
const rangeFilter = `
	AND ($2::date IS NULL OR t.date >= $2)
	AND ($3::date IS NULL OR t.date <= $3)
`

func (r *ReportRepository) SumByType(ctx context.Context, userID string, typ category.Type, dr report.DateRange) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		WHERE t.user_id = $1` + rangeFilter + `
		  AND t.type = $4
	`

	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, dr.Start, dr.End, typ).Scan(&sum); err != nil {
		return decimal.Zero, classify("sum transactions", "transaction", err)
	}

	return sum, nil
}

func (r *ReportRepository) CategoryBreakdown(ctx context.Context, userID string, dr report.DateRange) ([]report.CategoryTotal, error) {
	query := `
		SELECT t.type, c.id, c.name, c.color, c.icon, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1` + rangeFilter + `
		GROUP BY t.type, c.id, c.name, c.color, c.icon
		ORDER BY t.type DESC, total DESC, c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, dr.Start, dr.End)
	if err != nil {
		return nil, classify("category breakdown", "transaction", err)
	}
	defer rows.Close()

	totals := []report.CategoryTotal{}
	for rows.Next() {
		var ct report.CategoryTotal
		if err := rows.Scan(&ct.Type, &ct.CategoryID, &ct.Name, &ct.Color, &ct.Icon, &ct.Total); err != nil {
			return nil, apperr.Unavailable("scan category total", err)
		}
		totals = append(totals, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("iterate category totals", err)
	}

	return totals, nil
}

func (r *ReportRepository) Recent(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error) {
	query := transactionSelect + `
		FROM transactions t JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, classify("recent transactions", "transaction", err)
	}
	defer rows.Close()

	txns := []*transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperr.Unavailable("scan transaction", err)
		}
		txns = append(txns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("iterate transactions", err)
	}

	return txns, nil
}

func (r *ReportRepository) MonthlyTotals(ctx context.Context, userID string, since time.Time) ([]report.MonthTotal, error) {
	query := `
		SELECT to_char(DATE_TRUNC('month', t.date), 'YYYY-MM') AS month, t.type, SUM(t.amount)
		FROM transactions t
		WHERE t.user_id = $1 AND t.date >= $2::date
		GROUP BY month, t.type
		ORDER BY month ASC, t.type ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, classify("monthly totals", "transaction", err)
	}
	defer rows.Close()

	totals := []report.MonthTotal{}
	for rows.Next() {
		var mt report.MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Type, &mt.Total); err != nil {
			return nil, apperr.Unavailable("scan monthly total", err)
		}
		totals = append(totals, mt)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("iterate monthly totals", err)
	}

	return totals, nil
}
