package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fintrack/internal/shared/apperr"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

type ctxKey int

const userIDKey ctxKey = iota

// Authenticator resolves an access token to the id of a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (string, error)
}

// AuthenticatorFunc adapts a plain function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, accessToken string) (string, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, accessToken string) (string, error) {
	return f(ctx, accessToken)
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFrom returns the user id stored by Auth.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Auth rejects requests without a valid access token. An Authorization
// header is used when present; the HttpOnly cookie only when it is absent.
func Auth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := accessToken(r)
			if err != nil {
				writeError(w, err)
				return
			}

			userID, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func accessToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
		return "", fmt.Errorf("%w: authentication required", apperr.ErrInvalidToken)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: invalid authorization header format", apperr.ErrInvalidToken)
	}
	return strings.TrimSpace(token), nil
}
