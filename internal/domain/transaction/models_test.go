package transaction

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/shared/apperr"
)

func TestCreateTransactionParams_Validate(t *testing.T) {
	valid := func() CreateTransactionParams {
		return CreateTransactionParams{
			Amount:      decimal.RequireFromString("42.50"),
			Description: "Groceries",
			Type:        category.TypeExpense,
			CategoryID:  "cat-1",
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *CreateTransactionParams)
		wantErr bool
	}{
		{"valid", func(p *CreateTransactionParams) {}, false},
		{"zero amount", func(p *CreateTransactionParams) { p.Amount = decimal.Zero }, true},
		{"negative amount", func(p *CreateTransactionParams) { p.Amount = decimal.RequireFromString("-1") }, true},
		{"smallest amount", func(p *CreateTransactionParams) { p.Amount = decimal.RequireFromString("0.01") }, false},
		{"three decimals", func(p *CreateTransactionParams) { p.Amount = decimal.RequireFromString("1.005") }, true},
		{"trailing zero decimals", func(p *CreateTransactionParams) { p.Amount = decimal.RequireFromString("1.500") }, false},
		{"largest amount", func(p *CreateTransactionParams) { p.Amount = decimal.RequireFromString("9999999999999.99") }, false},
		{"too large", func(p *CreateTransactionParams) { p.Amount = decimal.RequireFromString("10000000000000") }, true},
		{"empty description", func(p *CreateTransactionParams) { p.Description = "" }, true},
		{"long description", func(p *CreateTransactionParams) { p.Description = strings.Repeat("d", 256) }, true},
		{"unknown type", func(p *CreateTransactionParams) { p.Type = "transfer" }, true},
		{"missing category", func(p *CreateTransactionParams) { p.CategoryID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateTransactionParams_Normalize(t *testing.T) {
	today := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	blank := "   "

	p := CreateTransactionParams{Description: "  Coffee ", Notes: &blank}
	p.Normalize(today)

	if p.Description != "Coffee" {
		t.Errorf("Description = %q, want %q", p.Description, "Coffee")
	}
	if p.Date == nil || !p.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2024-03-15", p.Date)
	}
	if p.Notes != nil {
		t.Errorf("Notes = %q, want nil", *p.Notes)
	}
}

func TestDateOf_KeepsLocalCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	got := DateOf(time.Date(2024, 3, 1, 2, 0, 0, 0, tokyo))

	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
}

func TestListParams_Validate(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(p *ListParams)
		wantErr bool
	}{
		{"defaults", func(p *ListParams) {}, false},
		{"page zero", func(p *ListParams) { p.Page = 0 }, true},
		{"limit zero", func(p *ListParams) { p.Limit = 0 }, true},
		{"limit one", func(p *ListParams) { p.Limit = 1 }, false},
		{"limit max", func(p *ListParams) { p.Limit = 100 }, false},
		{"limit over max", func(p *ListParams) { p.Limit = 101 }, true},
		{"bad type", func(p *ListParams) { p.Type = "loan" }, true},
		{"inverted range", func(p *ListParams) { p.StartDate, p.EndDate = &april, &march }, true},
		{"open range", func(p *ListParams) { p.StartDate = &march }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultListParams()
			tt.mutate(&p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit, total int
		wantPages          int
	}{
		{1, 20, 0, 0},
		{1, 20, 1, 1},
		{1, 20, 20, 1},
		{2, 20, 21, 2},
		{3, 7, 50, 8},
	}

	for _, tt := range tests {
		got := NewPagination(tt.page, tt.limit, tt.total)
		if got.TotalPages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).TotalPages = %d, want %d", tt.page, tt.limit, tt.total, got.TotalPages, tt.wantPages)
		}
		if got.CurrentPage != tt.page || got.ItemsPerPage != tt.limit || got.TotalItems != tt.total {
			t.Errorf("NewPagination() = %+v", got)
		}
	}
}

func TestListParams_Offset(t *testing.T) {
	p := ListParams{Page: 3, Limit: 25}
	if p.Offset() != 50 {
		t.Errorf("Offset() = %d, want 50", p.Offset())
	}
}
