package models

import "github.com/shopspring/decimal"

// Settlement represents a real-world payment between group members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// Amount is the payment amount, positive, 2-decimal scale.
	Amount decimal.Decimal

	// Note is an optional description for the settlement.
	Note string

	// SettledAt is the Unix timestamp of when the payment happened.
	// Summaries filter on this.
	SettledAt int64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
