package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"splitledger/internal/calculator"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// ExpenseService validates and records expenses, splits and settlements.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput is the caller-supplied description of a new expense.
// Splits may be empty, in which case the amount is split equally among all
// current members.
type ExpenseInput struct {
	PayerID     string
	CategoryID  string
	Description string
	Amount      decimal.Decimal
	// SpentAt is a Unix timestamp; zero means "now".
	SpentAt int64
	Splits  []calculator.Share
}

// validAmount reports whether d is positive at 2-decimal scale.
func validAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(2))
}

// CreateExpense validates and persists an expense together with its splits.
//
// Preconditions, checked against a membership snapshot taken here:
//   - the actor and the payer are current members
//   - the category, if given, belongs to the group
//   - explicit splits reference only current members and sum exactly to the amount
//
// When no explicit splits are given the amount is split equally among all
// current members in join order (rounding remainder to the last member).
// The expense and its splits commit atomically or not at all.
func (s *ExpenseService) CreateExpense(ctx context.Context, actorID, groupID string, in ExpenseInput) (*models.Expense, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	if !validAmount(in.Amount) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, in.Amount)
	}

	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]string, len(members))
	isMember := make(map[string]bool, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
		isMember[m.UserID] = true
	}

	if !isMember[in.PayerID] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayer, in.PayerID)
	}

	if in.CategoryID != "" {
		category, err := s.store.GetCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.GroupID != groupID {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, in.CategoryID)
		}
	}

	shares := in.Splits
	if len(shares) == 0 {
		shares, err = calculator.EqualSplit(in.Amount, memberIDs)
		if err != nil {
			return nil, err
		}
	} else {
		for _, share := range shares {
			if !isMember[share.UserID] {
				return nil, fmt.Errorf("%w: %s", ErrInvalidSplitMember, share.UserID)
			}
		}
		if err := calculator.ValidateExplicit(in.Amount, shares); err != nil {
			return nil, err
		}
	}

	// Postcondition regardless of path: shares sum exactly to the amount.
	if !calculator.SumShares(shares).Equal(in.Amount) {
		return nil, fmt.Errorf("%w: computed shares do not cover the amount", calculator.ErrSplitMismatch)
	}

	expense := &models.Expense{
		GroupID:     groupID,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PayerID,
		CreatedBy:   actorID,
		SpentAt:     in.SpentAt,
	}
	expense.Splits = make([]models.ExpenseSplit, len(shares))
	for i, share := range shares {
		expense.Splits[i] = models.ExpenseSplit{UserID: share.UserID, Share: share.Amount}
	}

	if err := s.store.CreateExpenseWithSplits(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"paid_by", expense.PaidBy,
		"splits", len(expense.Splits),
	)
	return expense, nil
}

// GetExpense retrieves one of the group's expenses with its splits.
func (s *ExpenseService) GetExpense(ctx context.Context, actorID, groupID, expenseID string) (*models.Expense, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.GroupID != groupID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return expense, nil
}

// ListExpenses returns the group's expenses with splits, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, actorID, groupID string) ([]*models.Expense, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense removes an expense. Only the group creator or whoever
// recorded the expense may delete it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, actorID, groupID, expenseID string) error {
	group, err := requireMember(ctx, s.store, groupID, actorID)
	if err != nil {
		return err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.GroupID != groupID {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if actorID != group.CreatedBy && actorID != expense.CreatedBy {
		return fmt.Errorf("%w: only the group creator or the expense creator may delete it", ErrForbidden)
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	slog.Info("Expense deleted", "group_id", groupID, "expense_id", expenseID, "actor", actorID)
	return nil
}

// SettlementInput is the caller-supplied description of a new settlement.
type SettlementInput struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	Note       string
	// SettledAt is a Unix timestamp; zero means "now".
	SettledAt int64
}

// CreateSettlement records a payment between two members. Both parties must
// be current members of the group.
func (s *ExpenseService) CreateSettlement(ctx context.Context, actorID, groupID string, in SettlementInput) (*models.Settlement, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	if !validAmount(in.Amount) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, in.Amount)
	}
	if in.FromUserID == in.ToUserID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrNotAGroupMember)
	}

	for _, userID := range []string{in.FromUserID, in.ToUserID} {
		if _, err := s.store.GetMember(ctx, groupID, userID); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotAGroupMember, userID)
		}
	}

	settlement := &models.Settlement{
		GroupID:    groupID,
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount,
		Note:       in.Note,
		SettledAt:  in.SettledAt,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"from", settlement.FromUserID,
		"to", settlement.ToUserID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// ListSettlements returns the group's settlements, newest first.
func (s *ExpenseService) ListSettlements(ctx context.Context, actorID, groupID string) ([]*models.Settlement, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
