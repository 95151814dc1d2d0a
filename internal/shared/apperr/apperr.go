// Package apperr defines the failure kinds shared by the domain services.
//
// Every error returned by a service wraps exactly one of the sentinels below,
// so callers classify failures with errors.Is and never by message text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpired            = errors.New("token expired")
	ErrUnavailable        = errors.New("store unavailable")
)

// Validation returns an ErrValidation carrying a caller-facing message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflict returns an ErrConflict carrying a caller-facing message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Unavailable tags a persistence failure. The original error stays in the chain.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

// Kind is the machine-readable name of a failure, used in API responses.
type Kind string

const (
	KindValidation         Kind = "validation_failed"
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidToken       Kind = "invalid_token"
	KindExpired            Kind = "token_expired"
	KindUnavailable        Kind = "unavailable"
	KindInternal           Kind = "internal_error"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrValidation, KindValidation},
	{ErrConflict, KindConflict},
	{ErrNotFound, KindNotFound},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrExpired, KindExpired},
	{ErrInvalidToken, KindInvalidToken},
	{ErrUnavailable, KindUnavailable},
}

// KindOf classifies err. Untagged errors are KindInternal.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
