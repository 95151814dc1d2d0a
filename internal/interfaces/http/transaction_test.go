package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

var handlerNow = time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)

func ownedCategoryRepo(owner string, ids ...string) *MockCategoryRepo {
	return &MockCategoryRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*category.Category, error) {
			for _, owned := range ids {
				if userID == owner && id == owned {
					return &category.Category{ID: id, UserID: userID}, nil
				}
			}
			return nil, apperr.NotFound("category")
		},
	}
}

func newTestTransactionHandler(txRepo *MockTransactionRepo, catRepo *MockCategoryRepo) *TransactionHandler {
	svc := transaction.NewService(txRepo, category.NewService(catRepo), func() time.Time { return handlerNow })
	return NewTransactionHandler(svc)
}

func TestHandleTransactions_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		check          func(t *testing.T, p transaction.ListParams)
	}{
		{
			name:           "Defaults",
			query:          "",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, p transaction.ListParams) {
				if p.Page != 1 || p.Limit != 20 {
					t.Errorf("page/limit = %d/%d, want 1/20", p.Page, p.Limit)
				}
			},
		},
		{
			name:           "Filters",
			query:          "?page=2&limit=5&type=EXPENSE&categoryId=cat-1&startDate=2024-03-01&endDate=2024-03-31&search=%20coffee%20",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, p transaction.ListParams) {
				if p.Page != 2 || p.Limit != 5 {
					t.Errorf("page/limit = %d/%d, want 2/5", p.Page, p.Limit)
				}
				if p.Type != category.TypeExpense || p.CategoryID != "cat-1" || p.Search != "coffee" {
					t.Errorf("filters = %+v", p)
				}
				if p.StartDate == nil || !p.StartDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("StartDate = %v", p.StartDate)
				}
			},
		},
		{name: "Limit too large", query: "?limit=101", expectedStatus: http.StatusBadRequest},
		{name: "Page zero", query: "?page=0", expectedStatus: http.StatusBadRequest},
		{name: "Page not a number", query: "?page=two", expectedStatus: http.StatusBadRequest},
		{name: "Bad date", query: "?startDate=15/03/2024", expectedStatus: http.StatusBadRequest},
		{name: "Inverted range", query: "?startDate=2024-04-01&endDate=2024-03-01", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got transaction.ListParams
			txRepo := &MockTransactionRepo{
				ListFunc: func(ctx context.Context, userID string, params transaction.ListParams) ([]*transaction.Transaction, int, error) {
					got = params
					return []*transaction.Transaction{{ID: "tx-1", UserID: userID}}, 11, nil
				},
			}
			handler := newTestTransactionHandler(txRepo, &MockCategoryRepo{})

			rr := serve("/api/transactions/", handler.HandleTransactions,
				newRequest(t, http.MethodGet, "/api/transactions/"+tt.query, "user-1", nil))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.check == nil {
				return
			}
			tt.check(t, got)

			var page transaction.Page
			if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
				t.Fatalf("failed to decode page: %v", err)
			}
			if page.Pagination.TotalItems != 11 {
				t.Errorf("TotalItems = %d, want 11", page.Pagination.TotalItems)
			}
			wantPages := (11 + got.Limit - 1) / got.Limit
			if page.Pagination.TotalPages != wantPages {
				t.Errorf("TotalPages = %d, want %d", page.Pagination.TotalPages, wantPages)
			}
		})
	}
}

func TestHandleTransactions_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedKind   apperr.Kind
		check          func(t *testing.T, p transaction.CreateTransactionParams)
	}{
		{
			name:           "Success with default date",
			body:           `{"amount":"12.50","description":" Lunch ","type":"expense","categoryId":"cat-1"}`,
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, p transaction.CreateTransactionParams) {
				if !p.Amount.Equal(decimal.RequireFromString("12.50")) {
					t.Errorf("Amount = %s", p.Amount)
				}
				if p.Description != "Lunch" {
					t.Errorf("Description = %q", p.Description)
				}
				if p.Date == nil || !p.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("Date = %v, want 2024-03-15", p.Date)
				}
			},
		},
		{
			name:           "Numeric amount and explicit date",
			body:           `{"amount":99.9,"description":"Rent","type":"expense","categoryId":"cat-1","date":"2024-02-01"}`,
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, p transaction.CreateTransactionParams) {
				if p.Date == nil || !p.Date.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("Date = %v, want 2024-02-01", p.Date)
				}
			},
		},
		{
			name:           "Zero amount",
			body:           `{"amount":0,"description":"Rent","type":"expense","categoryId":"cat-1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   apperr.KindValidation,
		},
		{
			name:           "Negative amount",
			body:           `{"amount":"-5","description":"Rent","type":"expense","categoryId":"cat-1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   apperr.KindValidation,
		},
		{
			name:           "Someone else's category",
			body:           `{"amount":5,"description":"Rent","type":"expense","categoryId":"cat-other"}`,
			expectedStatus: http.StatusNotFound,
			expectedKind:   apperr.KindNotFound,
		},
		{
			name:           "Bad date",
			body:           `{"amount":5,"description":"Rent","type":"expense","categoryId":"cat-1","date":"yesterday"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got transaction.CreateTransactionParams
			txRepo := &MockTransactionRepo{
				CreateFunc: func(ctx context.Context, userID string, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
					got = params
					return &transaction.Transaction{ID: "tx-1", UserID: userID, Amount: params.Amount, Date: *params.Date}, nil
				},
			}
			handler := newTestTransactionHandler(txRepo, ownedCategoryRepo("user-1", "cat-1"))

			rr := serve("/api/transactions/", handler.HandleTransactions,
				newRequest(t, http.MethodPost, "/api/transactions/", "user-1", tt.body))

			if tt.expectedKind != "" {
				assertError(t, rr, tt.expectedStatus, tt.expectedKind)
				return
			}
			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			tt.check(t, got)
		})
	}
}

func TestHandleTransactionByID_Get(t *testing.T) {
	txRepo := &MockTransactionRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
			if userID == "user-1" && id == "tx-1" {
				return &transaction.Transaction{ID: id, UserID: userID}, nil
			}
			return nil, apperr.NotFound("transaction")
		},
	}
	handler := newTestTransactionHandler(txRepo, &MockCategoryRepo{})

	rr := serve("/api/transactions/{id}", handler.HandleTransactionByID,
		newRequest(t, http.MethodGet, "/api/transactions/tx-1", "user-1", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("owner status = %d, want 200", rr.Code)
	}

	rr = serve("/api/transactions/{id}", handler.HandleTransactionByID,
		newRequest(t, http.MethodGet, "/api/transactions/tx-1", "user-2", nil))
	assertError(t, rr, http.StatusNotFound, apperr.KindNotFound)
}

func TestHandleTransactionByID_Update(t *testing.T) {
	var got transaction.UpdateTransactionParams
	txRepo := &MockTransactionRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
			return &transaction.Transaction{ID: id, UserID: userID}, nil
		},
		UpdateFunc: func(ctx context.Context, userID, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
			got = params
			return &transaction.Transaction{ID: id, UserID: userID}, nil
		},
	}
	handler := newTestTransactionHandler(txRepo, ownedCategoryRepo("user-1", "cat-1"))

	rr := serve("/api/transactions/{id}", handler.HandleTransactionByID,
		newRequest(t, http.MethodPut, "/api/transactions/tx-1", "user-1", `{"date":"2024-01-31T23:59:00-03:00","userId":"user-2"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if got.Date == nil || !got.Date.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want calendar date 2024-01-31", got.Date)
	}
	if got.Amount != nil || got.CategoryID != nil {
		t.Errorf("unexpected fields set: %+v", got)
	}

	rr = serve("/api/transactions/{id}", handler.HandleTransactionByID,
		newRequest(t, http.MethodPut, "/api/transactions/tx-1", "user-1", `{"categoryId":"cat-2"}`))
	assertError(t, rr, http.StatusNotFound, apperr.KindNotFound)
}

func TestHandleTransactionByID_Delete(t *testing.T) {
	var deleted string
	txRepo := &MockTransactionRepo{
		DeleteFunc: func(ctx context.Context, userID, id string) error {
			deleted = id
			return nil
		},
	}
	handler := newTestTransactionHandler(txRepo, &MockCategoryRepo{})

	rr := serve("/api/transactions/{id}", handler.HandleTransactionByID,
		newRequest(t, http.MethodDelete, "/api/transactions/tx-7", "user-1", nil))

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
	if deleted != "tx-7" {
		t.Errorf("deleted = %q, want tx-7", deleted)
	}
}
