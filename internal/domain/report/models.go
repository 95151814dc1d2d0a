package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
)

// Period names accepted by Summary.
const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

const (
	DefaultTrendMonths = 6
	MinTrendMonths     = 1
	MaxTrendMonths     = 12

	recentLimit = 10
)

// DateRange is an inclusive range of calendar dates. A nil bound is open.
type DateRange struct {
	Start *time.Time `json:"startDate"`
	End   *time.Time `json:"endDate"`
}

type SummaryParams struct {
	StartDate *time.Time
	EndDate   *time.Time
	Period    string
}

type Totals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	Period        DateRange       `json:"period"`
}

// CategoryTotal is one (type, category) group of the breakdown.
type CategoryTotal struct {
	Type       category.Type   `json:"type"`
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	Total      decimal.Decimal `json:"total"`
}

type Summary struct {
	Summary            Totals                     `json:"summary"`
	CategoryBreakdown  []CategoryTotal            `json:"categoryBreakdown"`
	RecentTransactions []*transaction.Transaction `json:"recentTransactions"`
}

// MonthTotal is the sum for one (calendar month, type) pair. Month is YYYY-MM.
type MonthTotal struct {
	Month string          `json:"month"`
	Type  category.Type   `json:"type"`
	Total decimal.Decimal `json:"total"`
}

type Trends struct {
	Months int          `json:"months"`
	Since  time.Time    `json:"since"`
	Trends []MonthTotal `json:"trends"`
}
