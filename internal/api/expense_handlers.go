package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"splitledger/internal/calculator"
	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

type splitPayload struct {
	UserID string          `json:"user_id"`
	Share  decimal.Decimal `json:"share"`
}

type expenseRequest struct {
	PayerID     string          `json:"payer_id"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     int64           `json:"spent_at"`
	Splits      []splitPayload  `json:"splits"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	CreatedBy   string          `json:"created_by"`
	SpentAt     int64           `json:"spent_at"`
	CreatedAt   int64           `json:"created_at"`
	Splits      []splitPayload  `json:"splits"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		CategoryID:  e.CategoryID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		CreatedBy:   e.CreatedBy,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
		Splits:      make([]splitPayload, len(e.Splits)),
	}
	for i, sp := range e.Splits {
		resp.Splits[i] = splitPayload{UserID: sp.UserID, Share: sp.Share}
	}
	return resp
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	in := service.ExpenseInput{
		PayerID:     req.PayerID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		SpentAt:     req.SpentAt,
	}
	for _, sp := range req.Splits {
		in.Splits = append(in.Splits, calculator.Share{UserID: sp.UserID, Amount: sp.Share})
	}

	expense, err := s.expenses.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), r.PathValue("expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := s.expenses.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), r.PathValue("expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type settlementRequest struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
	SettledAt  int64           `json:"settled_at"`
}

type settlementResponse struct {
	ID         string          `json:"id"`
	GroupID    string          `json:"group_id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	SettledAt  int64           `json:"settled_at"`
	CreatedAt  int64           `json:"created_at"`
}

func toSettlementResponse(st *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:         st.ID,
		GroupID:    st.GroupID,
		FromUserID: st.FromUserID,
		ToUserID:   st.ToUserID,
		Amount:     st.Amount,
		Note:       st.Note,
		SettledAt:  st.SettledAt,
		CreatedAt:  st.CreatedAt,
	}
}

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	settlement, err := s.expenses.CreateSettlement(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), service.SettlementInput{
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Note:       req.Note,
		SettledAt:  req.SettledAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.expenses.ListSettlements(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]settlementResponse, 0, len(settlements))
	for _, st := range settlements {
		resp = append(resp, toSettlementResponse(st))
	}
	writeJSON(w, http.StatusOK, resp)
}
