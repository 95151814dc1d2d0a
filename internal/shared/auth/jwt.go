package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"fintrack/internal/shared/apperr"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the payload carried by both token classes.
type Claims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is what the auth flow hands back to clients.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	// Now defaults to time.Now.
	Now func() time.Time
}

type signingKey struct {
	tokenType string
	secret    []byte
	ttl       time.Duration
}

// TokenService issues and verifies HS256 access and refresh tokens. Each
// class has its own secret, so one can never be replayed as the other.
type TokenService struct {
	access  signingKey
	refresh signingKey
	issuer  string
	now     func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenService{
		access:  signingKey{tokenType: TokenTypeAccess, secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: signingKey{tokenType: TokenTypeRefresh, secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		issuer:  cfg.Issuer,
		now:     cfg.Now,
	}
}

// Issue signs a new access/refresh pair for userID.
func (s *TokenService) Issue(userID string) (TokenPair, error) {
	now := s.now()

	access, err := s.sign(s.access, userID, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(s.refresh, userID, now)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess returns the user id embedded in an access token.
func (s *TokenService) VerifyAccess(token string) (string, error) {
	return s.verify(s.access, token)
}

// VerifyRefresh returns the user id embedded in a refresh token.
func (s *TokenService) VerifyRefresh(token string) (string, error) {
	return s.verify(s.refresh, token)
}

func (s *TokenService) sign(key signingKey, userID string, now time.Time) (string, error) {
	claims := Claims{
		UserID:    userID,
		TokenType: key.tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", key.tokenType, err)
	}
	return signed, nil
}

func (s *TokenService) verify(key signingKey, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty %s token", apperr.ErrInvalidToken, key.tokenType)
	}

	var claims Claims
	// Expiry is checked below against the injected clock, not jwt's global one.
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
			return "", fmt.Errorf("%w: invalid signature", apperr.ErrInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}

	if claims.TokenType != key.tokenType || claims.UserID == "" || claims.ExpiresAt == nil {
		return "", fmt.Errorf("%w: malformed %s token", apperr.ErrInvalidToken, key.tokenType)
	}
	if s.now().After(claims.ExpiresAt.Time) {
		return "", apperr.ErrExpired
	}

	return claims.UserID, nil
}
