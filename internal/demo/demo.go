// Package demo generates clearly labelled placeholder transactions for
// local development and screenshots. Nothing in reporting reads from it.
package demo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
)

// Label prefixes every generated description.
const Label = "[demo]"

type Config struct {
	Months   int // Trailing calendar months to cover, including the current one
	PerMonth int // Expense rows per month; income gets one or two
	Seed     uint64
	Now      time.Time
}

func DefaultConfig() Config {
	return Config{Months: 6, PerMonth: 20, Seed: 1, Now: time.Now()}
}

var descriptions = map[category.Type][]string{
	category.TypeIncome:  {"Monthly salary", "Freelance invoice", "Dividend payout", "Refund"},
	category.TypeExpense: {"Grocery run", "Coffee", "Bus pass", "Electricity bill", "Dinner out", "Pharmacy", "Streaming plan", "Hardware store"},
}

// Generate builds transactions spread across the configured months using
// only the supplied categories. Dates never fall after cfg.Now.
func Generate(cfg Config, categories []*category.Category) ([]transaction.CreateTransactionParams, error) {
	if cfg.Months < 1 || cfg.PerMonth < 1 {
		return nil, fmt.Errorf("months and per-month count must be positive")
	}

	byType := map[category.Type][]*category.Category{}
	for _, c := range categories {
		byType[c.Type] = append(byType[c.Type], c)
	}
	if len(byType[category.TypeIncome]) == 0 || len(byType[category.TypeExpense]) == 0 {
		return nil, fmt.Errorf("need at least one income and one expense category")
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	today := transaction.DateOf(cfg.Now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []transaction.CreateTransactionParams
	for i := cfg.Months - 1; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0)
		lastDay := month.AddDate(0, 1, -1).Day()
		if i == 0 {
			lastDay = today.Day()
		}

		incomeRows := 1 + rng.IntN(2)
		for range incomeRows {
			out = append(out, row(rng, category.TypeIncome, byType, month, lastDay))
		}
		for range cfg.PerMonth {
			out = append(out, row(rng, category.TypeExpense, byType, month, lastDay))
		}
	}

	return out, nil
}

func row(rng *rand.Rand, typ category.Type, byType map[category.Type][]*category.Category, month time.Time, lastDay int) transaction.CreateTransactionParams {
	cats := byType[typ]
	c := cats[rng.IntN(len(cats))]
	names := descriptions[typ]

	var cents int64
	if typ == category.TypeIncome {
		cents = 100_000 + rng.Int64N(400_000)
	} else {
		cents = 500 + rng.Int64N(29_500)
	}

	date := month.AddDate(0, 0, rng.IntN(lastDay))
	notes := Label + " generated"

	return transaction.CreateTransactionParams{
		Amount:      decimal.New(cents, -2),
		Description: Label + " " + names[rng.IntN(len(names))],
		Type:        typ,
		CategoryID:  c.ID,
		Date:        &date,
		Notes:       &notes,
	}
}

// Categories lists a user's categories.
type Categories interface {
	List(ctx context.Context, userID string) ([]*category.Category, error)
	SeedDefaults(ctx context.Context, userID string) error
}

// Transactions records one transaction through the normal validation path.
type Transactions interface {
	Create(ctx context.Context, userID string, params transaction.CreateTransactionParams) (*transaction.Transaction, error)
}

// Seeder writes generated rows for one user.
type Seeder struct {
	categories   Categories
	transactions Transactions
}

func NewSeeder(categories Categories, transactions Transactions) *Seeder {
	return &Seeder{categories: categories, transactions: transactions}
}

// Seed generates and stores demo rows, seeding the default categories first
// when the user has none. It returns the number of rows written.
func (s *Seeder) Seed(ctx context.Context, userID string, cfg Config) (int, error) {
	cats, err := s.categories.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(cats) == 0 {
		if err := s.categories.SeedDefaults(ctx, userID); err != nil {
			return 0, err
		}
		if cats, err = s.categories.List(ctx, userID); err != nil {
			return 0, err
		}
	}

	rows, err := Generate(cfg, cats)
	if err != nil {
		return 0, err
	}

	for i, p := range rows {
		if _, err := s.transactions.Create(ctx, userID, p); err != nil {
			return i, fmt.Errorf("create demo transaction %d: %w", i, err)
		}
	}
	return len(rows), nil
}
