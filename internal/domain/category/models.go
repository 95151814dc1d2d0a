package category

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"fintrack/internal/shared/apperr"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

const (
	DefaultColor = "#6B7280"
	DefaultIcon  = "folder"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCategoryParams struct {
	Name      string `json:"name"`
	Type      Type   `json:"type"`
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon,omitempty"`
	IsDefault bool   `json:"-"`
}

// Normalize trims text fields and fills in the default color and icon.
func (p *CreateCategoryParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Icon = strings.TrimSpace(p.Icon)
	if p.Color == "" {
		p.Color = DefaultColor
	}
	if p.Icon == "" {
		p.Icon = DefaultIcon
	}
}

func (p *CreateCategoryParams) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return apperr.Validation("type must be income or expense")
	}
	if err := validateColor(p.Color); err != nil {
		return err
	}
	return validateIcon(p.Icon)
}

// UpdateCategoryParams lists the only fields a category update may touch.
// The type is fixed at creation.
type UpdateCategoryParams struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

func (p *UpdateCategoryParams) Normalize() {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
	}
	if p.Icon != nil {
		v := strings.TrimSpace(*p.Icon)
		p.Icon = &v
	}
}

func (p *UpdateCategoryParams) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := validateColor(*p.Color); err != nil {
			return err
		}
	}
	if p.Icon != nil {
		if err := validateIcon(*p.Icon); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return apperr.Validation("name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return apperr.Validation("name must be 100 characters or less")
	}
	return nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return apperr.Validation("color must be a hex value like #1A2B3C")
	}
	return nil
}

func validateIcon(icon string) error {
	if icon == "" {
		return apperr.Validation("icon cannot be empty")
	}
	if utf8.RuneCountInString(icon) > 50 {
		return apperr.Validation("icon must be 50 characters or less")
	}
	return nil
}
