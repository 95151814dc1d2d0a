package investment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

type Type string

const (
	TypeStocks     Type = "stocks"
	TypeBonds      Type = "bonds"
	TypeCrypto     Type = "crypto"
	TypeMutualFund Type = "mutual_fund"
	TypeETF        Type = "etf"
	TypeRealEstate Type = "real_estate"
	TypeOther      Type = "other"
)

var validTypes = map[Type]bool{
	TypeStocks:     true,
	TypeBonds:      true,
	TypeCrypto:     true,
	TypeMutualFund: true,
	TypeETF:        true,
	TypeRealEstate: true,
	TypeOther:      true,
}

func (t Type) Valid() bool {
	return validTypes[t]
}

const maxNameLength = 100

// maxValue is the first value that no longer fits NUMERIC(15,2).
var maxValue = decimal.New(1, 13)

type Investment struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	Name         string           `json:"name"`
	Type         Type             `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	PurchaseDate time.Time        `json:"purchaseDate"` // Calendar date, midnight UTC
	Notes        *string          `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type CreateInvestmentParams struct {
	Name         string
	Type         Type
	Amount       decimal.Decimal
	CurrentValue *decimal.Decimal
	PurchaseDate *time.Time
	Notes        *string
}

func (p *CreateInvestmentParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Type = Type(strings.ToLower(string(p.Type)))
	if p.PurchaseDate != nil {
		d := transaction.DateOf(*p.PurchaseDate)
		p.PurchaseDate = &d
	}
	if p.Notes != nil {
		v := strings.TrimSpace(*p.Notes)
		if v == "" {
			p.Notes = nil
		} else {
			p.Notes = &v
		}
	}
}

func (p *CreateInvestmentParams) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return apperr.Validation("type %q is not a valid investment type", p.Type)
	}
	if err := validateValue("amount", p.Amount); err != nil {
		return err
	}
	if p.CurrentValue != nil {
		if err := validateValue("currentValue", *p.CurrentValue); err != nil {
			return err
		}
	}
	if p.PurchaseDate == nil {
		return apperr.Validation("purchaseDate is required")
	}
	return nil
}

// UpdateInvestmentParams lists the only fields an update may touch.
type UpdateInvestmentParams struct {
	Name         *string
	Type         *Type
	Amount       *decimal.Decimal
	CurrentValue *decimal.Decimal
	PurchaseDate *time.Time
	Notes        *string
}

func (p *UpdateInvestmentParams) Normalize() {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
	}
	if p.Type != nil {
		v := Type(strings.ToLower(string(*p.Type)))
		p.Type = &v
	}
	if p.PurchaseDate != nil {
		d := transaction.DateOf(*p.PurchaseDate)
		p.PurchaseDate = &d
	}
	if p.Notes != nil {
		v := strings.TrimSpace(*p.Notes)
		p.Notes = &v
	}
}

func (p *UpdateInvestmentParams) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Type != nil && !p.Type.Valid() {
		return apperr.Validation("type %q is not a valid investment type", *p.Type)
	}
	if p.Amount != nil {
		if err := validateValue("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.CurrentValue != nil {
		if err := validateValue("currentValue", *p.CurrentValue); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return apperr.Validation("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return apperr.Validation("name must be %d characters or less", maxNameLength)
	}
	return nil
}

func validateValue(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperr.Validation("%s must not be negative", field)
	}
	if !v.Equal(v.Round(2)) {
		return apperr.Validation("%s must have at most 2 decimal places", field)
	}
	if v.GreaterThanOrEqual(maxValue) {
		return apperr.Validation("%s is too large", field)
	}
	return nil
}
