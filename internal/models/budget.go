package models

import "github.com/shopspring/decimal"

// BudgetPeriod is a monthly spending cap for a group.
// Unique per (group, year, month); upserts overwrite the limit in place.
type BudgetPeriod struct {
	// ID is the unique identifier for the budget row (UUID format).
	ID string

	// GroupID is the group this budget belongs to.
	GroupID string

	// Year is the calendar year (e.g., 2024).
	Year int

	// Month is the calendar month, 1-12.
	Month int

	// Limit is the non-negative spending cap for the period.
	Limit decimal.Decimal

	// CreatedBy is the user ID of whoever set (or last overwrote) the limit.
	CreatedBy string

	// CreatedAt is the Unix timestamp of the last upsert.
	CreatedAt int64
}
