package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/calculator"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// BudgetService manages monthly group budgets and builds balance summaries.
type BudgetService struct {
	store storage.Store
}

// NewBudgetService creates a new BudgetService with the given storage backend.
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// UpsertBudget sets or overwrites the spending cap for (year, month).
// Only the group creator may set budgets. The limit must be non-negative
// at 2-decimal scale; a zero limit is allowed and means "no spending".
func (s *BudgetService) UpsertBudget(ctx context.Context, actorID, groupID string, year, month int, limit decimal.Decimal) (*models.BudgetPeriod, error) {
	if _, err := requireCreator(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: %d-%02d", ErrInvalidPeriod, year, month)
	}
	if limit.IsNegative() || !limit.Equal(limit.Truncate(2)) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, limit)
	}

	budget := &models.BudgetPeriod{
		GroupID:   groupID,
		Year:      year,
		Month:     month,
		Limit:     limit,
		CreatedBy: actorID,
	}
	if err := s.store.UpsertBudget(ctx, budget); err != nil {
		slog.Error("UpsertBudget failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Budget set", "group_id", groupID, "year", year, "month", month, "limit", limit)
	return budget, nil
}

// GetBudget returns the budget for (year, month), or storage.ErrNotFound
// when none has been set.
func (s *BudgetService) GetBudget(ctx context.Context, actorID, groupID string, year, month int) (*models.BudgetPeriod, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: %d-%02d", ErrInvalidPeriod, year, month)
	}
	return s.store.GetBudget(ctx, groupID, year, month)
}

// Summarize builds the group's balance summary for one calendar month.
// A zero year or month defaults to the current month in UTC; a zero day
// defaults to the first, and a later day shrinks the window from the left
// while it still closes at the start of the next month. The summary covers
// expenses and settlements whose spent/settled timestamp falls in the
// window, plus the budget limit when one is set.
func (s *BudgetService) Summarize(ctx context.Context, actorID, groupID string, year, month, day int) (calculator.Summary, error) {
	var zero calculator.Summary
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return zero, err
	}

	if year == 0 || month == 0 {
		now := time.Now().UTC()
		year, month = now.Year(), int(now.Month())
	}
	if day == 0 {
		day = 1
	}
	if month < 1 || month > 12 || year < 1 || day < 1 || day > 31 {
		return zero, fmt.Errorf("%w: %d-%02d-%02d", ErrInvalidPeriod, year, month, day)
	}
	start, end := calculator.MonthWindow(year, time.Month(month), day, time.UTC)

	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return zero, err
	}
	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
	}

	expenses, err := s.store.ListExpensesInWindow(ctx, groupID, start.Unix(), end.Unix())
	if err != nil {
		return zero, err
	}
	settlements, err := s.store.ListSettlementsInWindow(ctx, groupID, start.Unix(), end.Unix())
	if err != nil {
		return zero, err
	}

	var limit *decimal.Decimal
	budget, err := s.store.GetBudget(ctx, groupID, year, month)
	switch {
	case err == nil:
		limit = &budget.Limit
	case errors.Is(err, storage.ErrNotFound):
		// No budget set for this month; summary carries no limit.
	default:
		return zero, err
	}

	exp := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		shares := make([]calculator.Share, len(e.Splits))
		for j, sp := range e.Splits {
			shares[j] = calculator.Share{UserID: sp.UserID, Amount: sp.Share}
		}
		exp[i] = calculator.ExpenseForBalance{PaidBy: e.PaidBy, Amount: e.Amount, Splits: shares}
	}
	stl := make([]calculator.SettlementForBalance, len(settlements))
	for i, st := range settlements {
		stl[i] = calculator.SettlementForBalance{FromUserID: st.FromUserID, ToUserID: st.ToUserID, Amount: st.Amount}
	}

	return calculator.Summarize(memberIDs, exp, stl, limit), nil
}
