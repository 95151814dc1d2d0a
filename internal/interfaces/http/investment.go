package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/investment"
)

type InvestmentHandler struct {
	investmentService *investment.Service
}

func NewInvestmentHandler(investmentService *investment.Service) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

type CreateInvestmentRequest struct {
	Name         string           `json:"name"`
	Type         investment.Type  `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	CurrentValue *decimal.Decimal `json:"currentValue,omitempty"`
	PurchaseDate string           `json:"purchaseDate"`
	Notes        *string          `json:"notes,omitempty"`
}

type UpdateInvestmentRequest struct {
	Name         *string          `json:"name,omitempty"`
	Type         *investment.Type `json:"type,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CurrentValue *decimal.Decimal `json:"currentValue,omitempty"`
	PurchaseDate *string          `json:"purchaseDate,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

func (h *InvestmentHandler) HandleInvestments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListInvestments(w, r)
	case http.MethodPost:
		h.handleCreateInvestment(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (h *InvestmentHandler) HandleInvestmentByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetInvestment(w, r)
	case http.MethodPut:
		h.handleUpdateInvestment(w, r)
	case http.MethodDelete:
		h.handleDeleteInvestment(w, r)
	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}

func (h *InvestmentHandler) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	investments, err := h.investmentService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, investments)
}

func (h *InvestmentHandler) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateInvestmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	purchaseDate, err := parseDate("purchaseDate", req.PurchaseDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	inv, err := h.investmentService.Create(r.Context(), userID, investment.CreateInvestmentParams{
		Name:         req.Name,
		Type:         req.Type,
		Amount:       req.Amount,
		CurrentValue: req.CurrentValue,
		PurchaseDate: purchaseDate,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

func (h *InvestmentHandler) handleGetInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	inv, err := h.investmentService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

func (h *InvestmentHandler) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateInvestmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	params := investment.UpdateInvestmentParams{
		Name:         req.Name,
		Type:         req.Type,
		Amount:       req.Amount,
		CurrentValue: req.CurrentValue,
		Notes:        req.Notes,
	}
	if req.PurchaseDate != nil {
		date, err := parseDate("purchaseDate", *req.PurchaseDate)
		if err != nil {
			writeError(w, r, err)
			return
		}
		params.PurchaseDate = date
	}

	inv, err := h.investmentService.Update(r.Context(), userID, r.PathValue("id"), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

func (h *InvestmentHandler) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.investmentService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
