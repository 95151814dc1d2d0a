package transaction

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/shared/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// maxAmount is the first value that no longer fits NUMERIC(15,2).
var maxAmount = decimal.New(1, 13)

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        category.Type   `json:"type"`
	CategoryID  string          `json:"categoryId"`
	Date        time.Time       `json:"date"` // Calendar date, midnight UTC
	Notes       *string         `json:"notes,omitempty"`
	Category    *CategoryRef    `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CategoryRef is the slice of the category joined into listings.
type CategoryRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type CreateTransactionParams struct {
	Amount      decimal.Decimal
	Description string
	Type        category.Type
	CategoryID  string
	Date        *time.Time // nil means today
	Notes       *string
}

func (p *CreateTransactionParams) Normalize(today time.Time) {
	p.Description = strings.TrimSpace(p.Description)
	if p.Date == nil {
		p.Date = &today
	}
	d := DateOf(*p.Date)
	p.Date = &d
	p.Notes = normalizeNotes(p.Notes)
}

func (p *CreateTransactionParams) Validate() error {
	if err := validateAmount(p.Amount); err != nil {
		return err
	}
	if err := validateDescription(p.Description); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return apperr.Validation("type must be income or expense")
	}
	if p.CategoryID == "" {
		return apperr.Validation("category is required")
	}
	return nil
}

// UpdateTransactionParams lists the only fields an update may touch.
type UpdateTransactionParams struct {
	Amount      *decimal.Decimal
	Description *string
	Type        *category.Type
	CategoryID  *string
	Date        *time.Time
	Notes       *string
}

func (p *UpdateTransactionParams) Normalize() {
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		p.Description = &v
	}
	if p.Date != nil {
		d := DateOf(*p.Date)
		p.Date = &d
	}
	if p.Notes != nil {
		v := strings.TrimSpace(*p.Notes)
		p.Notes = &v
	}
}

func (p *UpdateTransactionParams) Validate() error {
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Type != nil && !p.Type.Valid() {
		return apperr.Validation("type must be income or expense")
	}
	if p.CategoryID != nil && *p.CategoryID == "" {
		return apperr.Validation("category cannot be empty")
	}
	return nil
}

// ListParams filters and pages a user's transactions. Start with
// DefaultListParams and override what the caller supplied.
type ListParams struct {
	Page       int
	Limit      int
	Type       category.Type
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

func DefaultListParams() ListParams {
	return ListParams{Page: DefaultPage, Limit: DefaultLimit}
}

func (p *ListParams) Validate() error {
	if p.Page < 1 {
		return apperr.Validation("page must be at least 1")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return apperr.Validation("limit must be between 1 and %d", MaxLimit)
	}
	if p.Type != "" && !p.Type.Valid() {
		return apperr.Validation("type must be income or expense")
	}
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		return apperr.Validation("startDate must not be after endDate")
	}
	return nil
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func NewPagination(page, limit, total int) Pagination {
	return Pagination{
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

type Page struct {
	Transactions []*Transaction `json:"transactions"`
	Pagination   Pagination     `json:"pagination"`
}

// DateOf drops the clock part of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be greater than 0")
	}
	if !amount.Equal(amount.Round(2)) {
		return apperr.Validation("amount must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return apperr.Validation("amount is too large")
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return apperr.Validation("description is required")
	}
	if utf8.RuneCountInString(description) > 255 {
		return apperr.Validation("description must be 255 characters or less")
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	v := strings.TrimSpace(*notes)
	if v == "" {
		return nil
	}
	return &v
}
