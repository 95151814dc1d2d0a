package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/shared/apperr"
	"fintrack/internal/shared/auth"
)

// Tokens issues and verifies session token pairs.
type Tokens interface {
	Issue(userID string) (auth.TokenPair, error)
	VerifyAccess(token string) (string, error)
	VerifyRefresh(token string) (string, error)
}

// Hasher turns plaintext credentials into one-way hashes and compares them.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// AuthResult is returned by every operation that opens a session.
type AuthResult struct {
	User   *User          `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// Service owns the session lifecycle: registration, login, refresh-token
// rotation, logout and access-token authentication.
//
// A user holds at most one live refresh token. Every successful login,
// refresh or password change overwrites it, which is the only revocation
// mechanism.
type Service struct {
	repo   Repository
	seeder CategorySeeder
	tokens Tokens
	hasher Hasher
	newID  func() string

	// dummyHash is compared against on unknown emails so both login
	// failures cost one hash comparison.
	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new user service. seeder may be nil.
func NewService(repo Repository, seeder CategorySeeder, tokens Tokens, hasher Hasher) *Service {
	return &Service{
		repo:   repo,
		seeder: seeder,
		tokens: tokens,
		hasher: hasher,
		newID:  uuid.NewString,
	}
}

// Register creates an account, seeds its default categories and opens a session.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		ID:           s.newID(),
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Currency:     params.Currency,
	})
	if err != nil {
		return nil, err
	}

	if s.seeder != nil {
		if err := s.seeder.SeedDefaults(ctx, u.ID); err != nil {
			slog.WarnContext(ctx, "failed to seed default categories", "user_id", u.ID, "error", err)
		}
	}

	return s.openSession(ctx, u)
}

// Login fails with the same ErrInvalidCredentials whether the email is
// unknown or the password is wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.verifyDummy(password)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return s.openSession(ctx, u)
}

// Refresh exchanges the live refresh token for a new pair and rotates it.
// Any token other than the stored one, an expired one included, is ErrInvalidToken.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if refreshToken == "" {
		return auth.TokenPair{}, fmt.Errorf("%w: refresh token required", apperr.ErrInvalidToken)
	}

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidToken) {
			return auth.TokenPair{}, err
		}
		return auth.TokenPair{}, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.TokenPair{}, fmt.Errorf("%w: unknown user", apperr.ErrInvalidToken)
		}
		return auth.TokenPair{}, err
	}

	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return auth.TokenPair{}, fmt.Errorf("%w: refresh token has been rotated", apperr.ErrInvalidToken)
	}

	return s.rotate(ctx, u.ID)
}

// Logout clears the stored session when refreshToken is the live one. It
// never fails: every other outcome leaves the caller without a usable session too.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			slog.WarnContext(ctx, "logout lookup failed", "user_id", userID, "error", err)
		}
		return
	}

	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return
	}

	if err := s.repo.SetRefreshToken(ctx, u.ID, nil); err != nil {
		slog.WarnContext(ctx, "failed to clear refresh token", "user_id", u.ID, "error", err)
	}
}

// Authenticate resolves the user behind an access token. An expired token
// yields apperr.ErrExpired so clients know to refresh instead of logging in again.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	userID, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", apperr.ErrInvalidToken)
		}
		return nil, err
	}

	return u, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile changes the allow-listed profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID string, params UpdateUserParams) (*User, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Empty() {
		return s.repo.GetByID(ctx, userID)
	}

	return s.repo.Update(ctx, userID, params)
}

// ChangePassword replaces the credential and rotates the refresh token, so
// sessions opened elsewhere stop refreshing. The caller gets a fresh pair.
func (s *Service) ChangePassword(ctx context.Context, userID string, params ChangePasswordParams) (auth.TokenPair, error) {
	if err := params.Validate(); err != nil {
		return auth.TokenPair{}, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenPair{}, err
	}

	if err := s.hasher.Verify(u.PasswordHash, params.CurrentPassword); err != nil {
		return auth.TokenPair{}, apperr.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(params.NewPassword)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return auth.TokenPair{}, err
	}

	slog.InfoContext(ctx, "password changed, sessions rotated", "user_id", u.ID)
	return s.rotate(ctx, u.ID)
}

func (s *Service) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("fintrack-unknown-account")
		if err != nil {
			slog.Warn("failed to build dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_ = s.hasher.Verify(s.dummyHash, password)
	}
}

func (s *Service) openSession(ctx context.Context, u *User) (*AuthResult, error) {
	pair, err := s.rotate(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.RefreshToken = &pair.RefreshToken

	return &AuthResult{User: u, Tokens: pair}, nil
}

// rotate issues a new pair and makes its refresh token the only live one.
func (s *Service) rotate(ctx context.Context, userID string) (auth.TokenPair, error) {
	pair, err := s.tokens.Issue(userID)
	if err != nil {
		return auth.TokenPair{}, err
	}

	if err := s.repo.SetRefreshToken(ctx, userID, &pair.RefreshToken); err != nil {
		return auth.TokenPair{}, err
	}

	return pair, nil
}
