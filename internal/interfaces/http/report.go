package http

import (
	"net/http"
	"strings"

	"fintrack/internal/domain/report"
)

type ReportHandler struct {
	reportService *report.Service
}

func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleSummary accepts startDate, endDate and period query parameters.
func (h *ReportHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	start, err := parseDate("startDate", q.Get("startDate"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate("endDate", q.Get("endDate"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.reportService.Summary(r.Context(), userID, report.SummaryParams{
		StartDate: start,
		EndDate:   end,
		Period:    strings.ToLower(strings.TrimSpace(q.Get("period"))),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleTrends accepts a months query parameter, default 6.
func (h *ReportHandler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	months, err := queryInt(r, "months", report.DefaultTrendMonths)
	if err != nil {
		writeError(w, r, err)
		return
	}

	trends, err := h.reportService.Trends(r.Context(), userID, months)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trends)
}
