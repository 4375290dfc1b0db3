package models

import "github.com/shopspring/decimal"

// Expense represents a shared cost paid by one group member.
// The splits attached to an expense always sum exactly to Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// CategoryID labels the expense; empty means uncategorized.
	CategoryID string

	// Description is a free-form note about what was bought.
	Description string

	// Amount is the full expense amount, positive, 2-decimal scale.
	Amount decimal.Decimal

	// PaidBy is the user ID of the member who fronted the money.
	PaidBy string

	// CreatedBy is the user ID of whoever recorded the expense.
	CreatedBy string

	// SpentAt is the Unix timestamp of when the expense happened
	// (as opposed to when it was entered). Summaries filter on this.
	SpentAt int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the per-member shares, ordered by creation.
	Splits []ExpenseSplit
}

// ExpenseSplit is one member's share of an expense. Unique per (expense, user).
type ExpenseSplit struct {
	// ID is the unique identifier for the split row (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the member who owes this share. Must be a group member
	// at the time the expense is created.
	UserID string

	// Share is this member's portion of the expense amount (>= 0, 2-decimal).
	Share decimal.Decimal
}
