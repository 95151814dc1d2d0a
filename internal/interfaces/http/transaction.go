package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
)

type TransactionHandler struct {
	transactionService *transaction.Service
}

func NewTransactionHandler(transactionService *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest carries dates as strings so both YYYY-MM-DD and
// RFC 3339 are accepted.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        category.Type   `json:"type"`
	CategoryID  string          `json:"categoryId"`
	Date        string          `json:"date,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Type        *category.Type   `json:"type,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// HandleTransactions routes requests to the appropriate handler based on method
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTransactions(w, r)
	case http.MethodPost:
		h.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// HandleTransactionByID routes requests for a specific transaction
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetTransaction(w, r)
	case http.MethodPut:
		h.handleUpdateTransaction(w, r)
	case http.MethodDelete:
		h.handleDeleteTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}

func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.transactionService.List(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func parseListParams(r *http.Request) (transaction.ListParams, error) {
	params := transaction.DefaultListParams()
	q := r.URL.Query()

	var err error
	if params.Page, err = queryInt(r, "page", transaction.DefaultPage); err != nil {
		return params, err
	}
	if params.Limit, err = queryInt(r, "limit", transaction.DefaultLimit); err != nil {
		return params, err
	}
	if params.StartDate, err = parseDate("startDate", q.Get("startDate")); err != nil {
		return params, err
	}
	if params.EndDate, err = parseDate("endDate", q.Get("endDate")); err != nil {
		return params, err
	}

	params.Type = category.Type(strings.ToLower(q.Get("type")))
	params.CategoryID = q.Get("categoryId")
	params.Search = strings.TrimSpace(q.Get("search"))

	return params, nil
}

func (h *TransactionHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.transactionService.Create(r.Context(), userID, transaction.CreateTransactionParams{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Date:        date,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tx, err := h.transactionService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	params := transaction.UpdateTransactionParams{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			writeError(w, r, err)
			return
		}
		params.Date = date
	}

	tx, err := h.transactionService.Update(r.Context(), userID, r.PathValue("id"), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.transactionService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
