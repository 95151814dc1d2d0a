package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

// transactionSelect reads from a relation aliased t joined to its category c.
const transactionSelect = `
	SELECT t.id, t.user_id, t.amount, t.description, t.type, t.category_id, t.date, t.notes,
	       t.created_at, t.updated_at, c.name, c.color, c.icon
`

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var ref transaction.CategoryRef
	err := row.Scan(
		&t.ID, &t.UserID, &t.Amount, &t.Description, &t.Type, &t.CategoryID, &t.Date, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt, &ref.Name, &ref.Color, &ref.Icon,
	)
	if err != nil {
		return nil, err
	}
	t.Date = transaction.DateOf(t.Date)
	t.Category = &ref
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, userID string, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	query := `
		WITH t AS (
			INSERT INTO transactions (id, user_id, amount, description, type, category_id, date, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)` + transactionSelect + `
		FROM t JOIN categories c ON c.id = t.category_id
	`

	t, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), userID, params.Amount, params.Description, params.Type,
		params.CategoryID, params.Date, params.Notes,
	))
	if err != nil {
		return nil, classify("create transaction", "transaction", err)
	}

	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("transaction")
	}

	query := transactionSelect + `
		FROM transactions t JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1 AND t.user_id = $2
	`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, classify("get transaction", "transaction", err)
	}

	return t, nil
}

// listFilter matches every ListParams filter; an empty or NULL argument disables its clause.
const listFilter = `
	WHERE t.user_id = $1
	  AND ($2::text = '' OR t.type = $2)
	  AND ($3::text = '' OR t.category_id::text = $3)
	  AND ($4::date IS NULL OR t.date >= $4)
	  AND ($5::date IS NULL OR t.date <= $5)
	  AND ($6::text = '' OR t.description ILIKE '%' || $6 || '%' ESCAPE '\')
`

func (r *TransactionRepository) List(ctx context.Context, userID string, params transaction.ListParams) ([]*transaction.Transaction, int, error) {
	args := []any{
		userID, string(params.Type), params.CategoryID,
		params.StartDate, params.EndDate, escapeLike(params.Search),
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t` + listFilter
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, classify("count transactions", "transaction", err)
	}

	query := transactionSelect + `
		FROM transactions t JOIN categories c ON c.id = t.category_id
	` + listFilter + `
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $7 OFFSET $8
	`

	rows, err := r.db.QueryContext(ctx, query, append(args, params.Limit, params.Offset())...)
	if err != nil {
		return nil, 0, classify("list transactions", "transaction", err)
	}
	defer rows.Close()

	txns := []*transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, apperr.Unavailable("scan transaction", err)
		}
		txns = append(txns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Unavailable("iterate transactions", err)
	}

	return txns, total, nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("transaction")
	}

	// An empty notes string clears the column; nil leaves it alone.
	query := `
		WITH t AS (
			UPDATE transactions
			SET amount = COALESCE($1, amount),
			    description = COALESCE($2, description),
			    type = COALESCE($3, type),
			    category_id = COALESCE($4::uuid, category_id),
			    date = COALESCE($5::date, date),
			    notes = CASE WHEN $6::text IS NULL THEN notes ELSE NULLIF($6::text, '') END,
			    updated_at = CURRENT_TIMESTAMP
			WHERE id = $7 AND user_id = $8
			RETURNING *
		)` + transactionSelect + `
		FROM t JOIN categories c ON c.id = t.category_id
	`

	t, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.Amount, params.Description, params.Type, params.CategoryID,
		params.Date, params.Notes, id, userID,
	))
	if err != nil {
		return nil, classify("update transaction", "transaction", err)
	}

	return t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("transaction")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return classify("delete transaction", "transaction", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Unavailable("delete transaction", fmt.Errorf("rows affected: %w", err))
	}
	if rows == 0 {
		return apperr.NotFound("transaction")
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(strings.TrimSpace(s))
}
