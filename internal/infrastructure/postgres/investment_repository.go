package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/domain/investment"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

const investmentColumns = `id, user_id, name, type, amount, current_value, purchase_date, notes, created_at, updated_at`

type InvestmentRepository struct {
	db *DB
}

func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func scanInvestment(row rowScanner) (*investment.Investment, error) {
	var inv investment.Investment
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.Name, &inv.Type, &inv.Amount, &inv.CurrentValue,
		&inv.PurchaseDate, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.PurchaseDate = transaction.DateOf(inv.PurchaseDate)
	return &inv, nil
}

func (r *InvestmentRepository) Create(ctx context.Context, userID string, params investment.CreateInvestmentParams) (*investment.Investment, error) {
	query := `
		INSERT INTO investments (id, user_id, name, type, amount, current_value, purchase_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + investmentColumns

	inv, err := scanInvestment(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), userID, params.Name, params.Type, params.Amount,
		params.CurrentValue, params.PurchaseDate, params.Notes,
	))
	if err != nil {
		return nil, classify("create investment", "investment", err)
	}

	return inv, nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, userID, id string) (*investment.Investment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("investment")
	}

	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1 AND user_id = $2`

	inv, err := scanInvestment(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, classify("get investment", "investment", err)
	}

	return inv, nil
}

func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID string) ([]*investment.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE user_id = $1
		ORDER BY purchase_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classify("list investments", "investment", err)
	}
	defer rows.Close()

	investments := []*investment.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, apperr.Unavailable("scan investment", err)
		}
		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("iterate investments", err)
	}

	return investments, nil
}

// Update leaves a column untouched when its parameter is nil. An empty
// notes string clears the notes.
func (r *InvestmentRepository) Update(ctx context.Context, userID, id string, params investment.UpdateInvestmentParams) (*investment.Investment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("investment")
	}

	query := `
		UPDATE investments
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    amount = COALESCE($3::numeric, amount),
		    current_value = COALESCE($4::numeric, current_value),
		    purchase_date = COALESCE($5::date, purchase_date),
		    notes = CASE WHEN $6::text IS NULL THEN notes ELSE NULLIF($6::text, '') END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
		RETURNING ` + investmentColumns

	inv, err := scanInvestment(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Type, params.Amount, params.CurrentValue,
		params.PurchaseDate, params.Notes, id, userID,
	))
	if err != nil {
		return nil, classify("update investment", "investment", err)
	}

	return inv, nil
}

func (r *InvestmentRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("investment")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return classify("delete investment", "investment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Unavailable("delete investment", fmt.Errorf("rows affected: %w", err))
	}
	if rows == 0 {
		return apperr.NotFound("investment")
	}

	return nil
}
