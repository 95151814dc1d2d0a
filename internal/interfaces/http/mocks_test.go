package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/investment"
	"fintrack/internal/domain/report"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/domain/user"
	"fintrack/internal/shared/apperr"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc          func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc         func(ctx context.Context, id string) (*user.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc          func(ctx context.Context, id string, params user.UpdateUserParams) (*user.User, error)
	UpdatePasswordFunc  func(ctx context.Context, id, passwordHash string) error
	SetRefreshTokenFunc func(ctx context.Context, id string, token *string) error
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperr.NotFound("user")
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, apperr.NotFound("user")
}

func (m *MockUserRepo) Update(ctx context.Context, id string, params user.UpdateUserParams) (*user.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepo) SetRefreshToken(ctx context.Context, id string, token *string) error {
	if m.SetRefreshTokenFunc != nil {
		return m.SetRefreshTokenFunc(ctx, id, token)
	}
	return nil
}

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	CreateFunc            func(ctx context.Context, userID string, params category.CreateCategoryParams) (*category.Category, error)
	GetByIDFunc           func(ctx context.Context, userID, id string) (*category.Category, error)
	ListByUserIDFunc      func(ctx context.Context, userID string) ([]*category.Category, error)
	UpdateFunc            func(ctx context.Context, userID, id string, params category.UpdateCategoryParams) (*category.Category, error)
	DeleteFunc            func(ctx context.Context, userID, id string) error
	CountTransactionsFunc func(ctx context.Context, userID, id string) (int, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, userID string, params category.CreateCategoryParams) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, userID, id string) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, apperr.NotFound("category")
}

func (m *MockCategoryRepo) ListByUserID(ctx context.Context, userID string) ([]*category.Category, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Update(ctx context.Context, userID, id string, params category.UpdateCategoryParams) (*category.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockCategoryRepo) CountTransactions(ctx context.Context, userID, id string) (int, error) {
	if m.CountTransactionsFunc != nil {
		return m.CountTransactionsFunc(ctx, userID, id)
	}
	return 0, nil
}

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc  func(ctx context.Context, userID string, params transaction.CreateTransactionParams) (*transaction.Transaction, error)
	GetByIDFunc func(ctx context.Context, userID, id string) (*transaction.Transaction, error)
	ListFunc    func(ctx context.Context, userID string, params transaction.ListParams) ([]*transaction.Transaction, int, error)
	UpdateFunc  func(ctx context.Context, userID, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error)
	DeleteFunc  func(ctx context.Context, userID, id string) error
}

func (m *MockTransactionRepo) Create(ctx context.Context, userID string, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, apperr.NotFound("transaction")
}

func (m *MockTransactionRepo) List(ctx context.Context, userID string, params transaction.ListParams) ([]*transaction.Transaction, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, params)
	}
	return nil, 0, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, userID, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockInvestmentRepo implements investment.Repository for testing
type MockInvestmentRepo struct {
	CreateFunc       func(ctx context.Context, userID string, params investment.CreateInvestmentParams) (*investment.Investment, error)
	GetByIDFunc      func(ctx context.Context, userID, id string) (*investment.Investment, error)
	ListByUserIDFunc func(ctx context.Context, userID string) ([]*investment.Investment, error)
	UpdateFunc       func(ctx context.Context, userID, id string, params investment.UpdateInvestmentParams) (*investment.Investment, error)
	DeleteFunc       func(ctx context.Context, userID, id string) error
}

func (m *MockInvestmentRepo) Create(ctx context.Context, userID string, params investment.CreateInvestmentParams) (*investment.Investment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockInvestmentRepo) GetByID(ctx context.Context, userID, id string) (*investment.Investment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, apperr.NotFound("investment")
}

func (m *MockInvestmentRepo) ListByUserID(ctx context.Context, userID string) ([]*investment.Investment, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockInvestmentRepo) Update(ctx context.Context, userID, id string, params investment.UpdateInvestmentParams) (*investment.Investment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, apperr.NotFound("investment")
}

func (m *MockInvestmentRepo) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return apperr.NotFound("investment")
}

// MockReportRepo implements report.Repository for testing
type MockReportRepo struct {
	SumByTypeFunc         func(ctx context.Context, userID string, typ category.Type, r report.DateRange) (decimal.Decimal, error)
	CategoryBreakdownFunc func(ctx context.Context, userID string, r report.DateRange) ([]report.CategoryTotal, error)
	RecentFunc            func(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error)
	MonthlyTotalsFunc     func(ctx context.Context, userID string, since time.Time) ([]report.MonthTotal, error)
}

func (m *MockReportRepo) SumByType(ctx context.Context, userID string, typ category.Type, r report.DateRange) (decimal.Decimal, error) {
	if m.SumByTypeFunc != nil {
		return m.SumByTypeFunc(ctx, userID, typ, r)
	}
	return decimal.Zero, nil
}

func (m *MockReportRepo) CategoryBreakdown(ctx context.Context, userID string, r report.DateRange) ([]report.CategoryTotal, error) {
	if m.CategoryBreakdownFunc != nil {
		return m.CategoryBreakdownFunc(ctx, userID, r)
	}
	return nil, nil
}

func (m *MockReportRepo) Recent(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockReportRepo) MonthlyTotals(ctx context.Context, userID string, since time.Time) ([]report.MonthTotal, error) {
	if m.MonthlyTotalsFunc != nil {
		return m.MonthlyTotalsFunc(ctx, userID, since)
	}
	return nil, nil
}
