// Package calculator implements the pure ledger math: expense splitting,
// balance aggregation and period windows. It has no storage or transport
// dependencies; callers pass in fully materialized collections.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyGroup is returned when an expense would be split among zero members.
	ErrEmptyGroup = errors.New("no members to split the expense among")

	// ErrSplitMismatch is returned when explicit shares do not sum exactly
	// to the expense amount.
	ErrSplitMismatch = errors.New("splits do not sum to the expense amount")

	// ErrNegativeShare is returned when an explicit share is below zero.
	ErrNegativeShare = errors.New("share must not be negative")

	// ErrDuplicateSplitUser is returned when the same user appears twice
	// in an explicit split list.
	ErrDuplicateSplitUser = errors.New("duplicate user in splits")
)

// Share pairs a member with their portion of an expense amount.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// EqualSplit divides amount evenly among memberIDs at 2-decimal precision.
//
// Each member gets amount/N truncated to 2 decimals; the rounding remainder
// goes entirely to the LAST member in the given order, so the shares always
// sum exactly to amount. Callers pass members ordered by join time, which
// makes the remainder assignment deterministic.
func EqualSplit(amount decimal.Decimal, memberIDs []string) ([]Share, error) {
	if len(memberIDs) == 0 {
		return nil, ErrEmptyGroup
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))
	base := amount.Div(n).Truncate(2)

	shares := make([]Share, len(memberIDs))
	for i, id := range memberIDs {
		shares[i] = Share{UserID: id, Amount: base}
	}

	// Whatever truncation shaved off lands on the last member.
	remainder := amount.Sub(base.Mul(n))
	last := len(shares) - 1
	shares[last].Amount = shares[last].Amount.Add(remainder)

	return shares, nil
}

// ValidateExplicit checks a caller-provided split list against the expense
// amount: no duplicate users, no negative shares, and the shares must sum
// exactly to amount (exact decimal equality, not epsilon comparison).
func ValidateExplicit(amount decimal.Decimal, shares []Share) error {
	if len(shares) == 0 {
		return ErrEmptyGroup
	}

	sum := decimal.Zero
	seen := make(map[string]bool, len(shares))
	for _, s := range shares {
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: user %s has share %s", ErrNegativeShare, s.UserID, s.Amount)
		}
		if seen[s.UserID] {
			return fmt.Errorf("%w: user %s", ErrDuplicateSplitUser, s.UserID)
		}
		seen[s.UserID] = true
		sum = sum.Add(s.Amount)
	}

	if !sum.Equal(amount) {
		return fmt.Errorf("%w: shares total %s, expense amount %s", ErrSplitMismatch, sum, amount)
	}

	return nil
}

// SumShares returns the exact total of the given shares.
func SumShares(shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}
