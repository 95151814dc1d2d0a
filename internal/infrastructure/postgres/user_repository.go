package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/domain/user"
	"fintrack/internal/shared/apperr"
)

const userColumns = `id, email, password_hash, first_name, last_name, currency, refresh_token, created_at, updated_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Currency,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.Email, params.PasswordHash, params.FirstName, params.LastName, params.Currency,
	))
	if err != nil {
		return nil, classify("create user", "user", err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("user")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify("get user", "user", err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, classify("get user by email", "user", err)
	}

	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, params user.UpdateUserParams) (*user.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($1, first_name),
		    last_name = COALESCE($2, last_name),
		    currency = COALESCE($3, currency),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, params.FirstName, params.LastName, params.Currency, id))
	if err != nil {
		return nil, classify("update user", "user", err)
	}

	return u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return r.execOne(ctx, "update password", query, passwordHash, id)
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id string, token *string) error {
	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`
	return r.execOne(ctx, "set refresh token", query, token, id)
}

// execOne runs an update that must touch exactly one user row.
func (r *UserRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(op, "user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Unavailable(op, fmt.Errorf("rows affected: %w", err))
	}
	if rows == 0 {
		return apperr.NotFound("user")
	}

	return nil
}
