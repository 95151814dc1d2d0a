package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"fintrack/internal/domain/category"
	"fintrack/internal/shared/apperr"
)

func TestHandleCategories_List(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       func() *MockCategoryRepo
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "Success",
			mockRepo: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					ListByUserIDFunc: func(ctx context.Context, userID string) ([]*category.Category, error) {
						return []*category.Category{
							{ID: "cat-1", UserID: userID, Name: "Food", Type: category.TypeExpense},
							{ID: "cat-2", UserID: userID, Name: "Salary", Type: category.TypeIncome},
						}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Empty list is an array",
			mockRepo:       func() *MockCategoryRepo { return &MockCategoryRepo{} },
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCategoryHandler(category.NewService(tt.mockRepo()))

			rr := serve("/api/categories/", handler.HandleCategories, newRequest(t, http.MethodGet, "/api/categories/", "user-1", nil))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			var body []category.Category
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if len(body) != tt.expectedCount {
				t.Errorf("got %d categories, want %d", len(body), tt.expectedCount)
			}
		})
	}
}

func TestHandleCategories_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{
			name:           "Success with defaults",
			body:           map[string]string{"name": "Pets", "type": "expense"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Invalid type",
			body:           map[string]string{"name": "Pets", "type": "transfer"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid color",
			body:           map[string]string{"name": "Pets", "type": "expense", "color": "red"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing name",
			body:           map[string]string{"type": "income"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created category.CreateCategoryParams
			repo := &MockCategoryRepo{
				CreateFunc: func(ctx context.Context, userID string, params category.CreateCategoryParams) (*category.Category, error) {
					created = params
					return &category.Category{ID: "cat-1", UserID: userID, Name: params.Name, Type: params.Type, Color: params.Color, Icon: params.Icon}, nil
				},
			}
			handler := NewCategoryHandler(category.NewService(repo))

			rr := serve("/api/categories/", handler.HandleCategories, newRequest(t, http.MethodPost, "/api/categories/", "user-1", tt.body))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedStatus == http.StatusCreated {
				if created.Color != category.DefaultColor || created.Icon != category.DefaultIcon {
					t.Errorf("defaults not applied: %+v", created)
				}
				if created.IsDefault {
					t.Error("user-created category marked as default")
				}
			}
		})
	}
}

func TestHandleCategoryByID_Delete(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       func() *MockCategoryRepo
		expectedStatus int
		expectedKind   apperr.Kind
	}{
		{
			name: "Success",
			mockRepo: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					GetByIDFunc: func(ctx context.Context, userID, id string) (*category.Category, error) {
						return &category.Category{ID: id, UserID: userID}, nil
					},
				}
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Not owned",
			mockRepo:       func() *MockCategoryRepo { return &MockCategoryRepo{} },
			expectedStatus: http.StatusNotFound,
			expectedKind:   apperr.KindNotFound,
		},
		{
			name: "Still referenced",
			mockRepo: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					GetByIDFunc: func(ctx context.Context, userID, id string) (*category.Category, error) {
						return &category.Category{ID: id, UserID: userID}, nil
					},
					CountTransactionsFunc: func(ctx context.Context, userID, id string) (int, error) {
						return 3, nil
					},
					DeleteFunc: func(ctx context.Context, userID, id string) error {
						t.Error("Delete called for a referenced category")
						return nil
					},
				}
			},
			expectedStatus: http.StatusConflict,
			expectedKind:   apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCategoryHandler(category.NewService(tt.mockRepo()))

			rr := serve("/api/categories/{id}", handler.HandleCategoryByID, newRequest(t, http.MethodDelete, "/api/categories/cat-1", "user-1", nil))

			if tt.expectedKind != "" {
				assertError(t, rr, tt.expectedStatus, tt.expectedKind)
				return
			}
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCategoryByID_Update(t *testing.T) {
	var gotID string
	repo := &MockCategoryRepo{
		UpdateFunc: func(ctx context.Context, userID, id string, params category.UpdateCategoryParams) (*category.Category, error) {
			gotID = id
			return &category.Category{ID: id, UserID: userID, Name: *params.Name}, nil
		},
	}
	handler := NewCategoryHandler(category.NewService(repo))

	rr := serve("/api/categories/{id}", handler.HandleCategoryByID,
		newRequest(t, http.MethodPut, "/api/categories/cat-9", "user-1", `{"name":"Groceries","type":"income"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if gotID != "cat-9" {
		t.Errorf("updated id = %q, want cat-9", gotID)
	}
}

func TestHandleCategoryByID_MethodNotAllowed(t *testing.T) {
	handler := NewCategoryHandler(category.NewService(&MockCategoryRepo{}))

	rr := serve("/api/categories/{id}", handler.HandleCategoryByID, newRequest(t, http.MethodPost, "/api/categories/cat-1", "user-1", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}
