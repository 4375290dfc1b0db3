package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

type budgetRequest struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Limit decimal.Decimal `json:"limit"`
}

type budgetResponse struct {
	GroupID   string          `json:"group_id"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Limit     decimal.Decimal `json:"limit"`
	CreatedBy string          `json:"created_by"`
}

func toBudgetResponse(b *models.BudgetPeriod) budgetResponse {
	return budgetResponse{GroupID: b.GroupID, Year: b.Year, Month: b.Month, Limit: b.Limit, CreatedBy: b.CreatedBy}
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	budget, err := s.budgets.UpsertBudget(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Year, req.Month, req.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(budget))
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodQuery(w, r)
	if !ok {
		return
	}

	budget, err := s.budgets.GetBudget(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(budget))
}

type balanceResponse struct {
	UserID string          `json:"user_id"`
	Net    decimal.Decimal `json:"net"`
}

type summaryResponse struct {
	TotalSpent  decimal.Decimal   `json:"total_spent"`
	BudgetLimit *decimal.Decimal  `json:"budget_limit,omitempty"`
	Remaining   *decimal.Decimal  `json:"remaining,omitempty"`
	Balances    []balanceResponse `json:"balances"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	// Year, month and day are optional; zeros mean the current month from day 1.
	year, month, ok := optionalPeriodQuery(w, r)
	if !ok {
		return
	}
	day := 0
	if v := r.URL.Query().Get("day"); v != "" {
		var err error
		if day, err = strconv.Atoi(v); err != nil {
			badRequest(w, "day must be an integer")
			return
		}
	}

	summary, err := s.budgets.Summarize(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), year, month, day)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := summaryResponse{
		TotalSpent:  summary.TotalSpent,
		BudgetLimit: summary.BudgetLimit,
		Remaining:   summary.Remaining,
		Balances:    make([]balanceResponse, len(summary.Balances)),
	}
	for i, b := range summary.Balances {
		resp.Balances[i] = balanceResponse{UserID: b.UserID, Net: b.Net}
	}
	writeJSON(w, http.StatusOK, resp)
}

// periodQuery parses required ?year= and ?month= parameters.
func periodQuery(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, month, ok = optionalPeriodQuery(w, r)
	if !ok {
		return 0, 0, false
	}
	if year == 0 || month == 0 {
		badRequest(w, "year and month query parameters are required")
		return 0, 0, false
	}
	return year, month, true
}

// optionalPeriodQuery parses ?year= and ?month=, returning zeros when absent.
func optionalPeriodQuery(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	q := r.URL.Query()
	var err error
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			badRequest(w, "year must be an integer")
			return 0, 0, false
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			badRequest(w, "month must be an integer")
			return 0, 0, false
		}
	}
	return year, month, true
}
