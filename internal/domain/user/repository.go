package user

import "context"

// Repository defines the interface for user data access.
// Lookups of a missing row return an error wrapping apperr.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, params UpdateUserParams) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetRefreshToken overwrites the stored session token. nil clears it.
	SetRefreshToken(ctx context.Context, id string, token *string) error
}

// CategorySeeder creates the default categories for a new account.
type CategorySeeder interface {
	SeedDefaults(ctx context.Context, userID string) error
}
