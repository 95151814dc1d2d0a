package user

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"fintrack/internal/shared/apperr"
)

const DefaultCurrency = "USD"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Currency     string    `json:"currency"`
	PasswordHash string    `json:"-"`
	RefreshToken *string   `json:"-"` // Nullable, at most one live session
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Currency     string
}

// RegisterParams is the raw registration input before normalization.
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Currency  string `json:"currency,omitempty"`
}

// Normalize trims names, lower-cases the email and upper-cases the currency.
func (p *RegisterParams) Normalize() {
	p.Email = NormalizeEmail(p.Email)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
}

func (p *RegisterParams) Validate() error {
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if err := validatePassword(p.Password); err != nil {
		return err
	}
	if err := validateName("first name", p.FirstName); err != nil {
		return err
	}
	if err := validateName("last name", p.LastName); err != nil {
		return err
	}
	return validateCurrency(p.Currency)
}

// UpdateUserParams lists the only profile fields a user may change.
type UpdateUserParams struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Currency  *string `json:"currency,omitempty"`
}

func (p *UpdateUserParams) Normalize() {
	if p.FirstName != nil {
		v := strings.TrimSpace(*p.FirstName)
		p.FirstName = &v
	}
	if p.LastName != nil {
		v := strings.TrimSpace(*p.LastName)
		p.LastName = &v
	}
	if p.Currency != nil {
		v := strings.ToUpper(strings.TrimSpace(*p.Currency))
		p.Currency = &v
	}
}

func (p *UpdateUserParams) Validate() error {
	if p.FirstName != nil {
		if err := validateName("first name", *p.FirstName); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := validateName("last name", *p.LastName); err != nil {
			return err
		}
	}
	if p.Currency != nil {
		if err := validateCurrency(*p.Currency); err != nil {
			return err
		}
	}
	return nil
}

func (p *UpdateUserParams) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Currency == nil
}

type ChangePasswordParams struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (p *ChangePasswordParams) Validate() error {
	if p.CurrentPassword == "" {
		return apperr.Validation("current password is required")
	}
	return validatePassword(p.NewPassword)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.Validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return apperr.Validation("email must be a valid address")
	}
	return nil
}

const minPasswordLength = 6

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func validateName(field, name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 50 {
		return apperr.Validation("%s must be between 2 and 50 characters", field)
	}
	return nil
}

func validateCurrency(code string) error {
	if len(code) != 3 {
		return apperr.Validation("currency must be a 3-letter code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return apperr.Validation("currency must be a 3-letter code")
		}
	}
	return nil
}
