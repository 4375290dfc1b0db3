package service

import "errors"

// Validation errors: the caller can fix these. The API layer maps them to
// 400-level responses. Split-specific validation errors (mismatch, empty
// group, negative or duplicate shares) come from the calculator package.
var (
	// ErrInvalidPayer is returned when an expense's payer is not a current
	// member of the target group.
	ErrInvalidPayer = errors.New("payer is not a member of the group")

	// ErrInvalidCategory is returned when an expense references a category
	// from a different group.
	ErrInvalidCategory = errors.New("category does not belong to the group")

	// ErrInvalidSplitMember is returned when an explicit split references a
	// user who is not a current member of the group.
	ErrInvalidSplitMember = errors.New("split user is not a member of the group")

	// ErrNotAGroupMember is returned when a settlement party is not a current
	// member of the group.
	ErrNotAGroupMember = errors.New("user is not a member of the group")

	// ErrCreatorNotRemovable is returned when removing the group creator's
	// own membership.
	ErrCreatorNotRemovable = errors.New("group creator cannot be removed")

	// ErrInvalidAmount is returned for amounts that are not positive or
	// carry more than 2 decimal places.
	ErrInvalidAmount = errors.New("amount must be positive with at most 2 decimal places")

	// ErrInvalidPeriod is returned for out-of-range budget/summary periods.
	ErrInvalidPeriod = errors.New("invalid year/month")
)

// ErrForbidden is returned when the actor lacks the role an operation
// requires (non-member reads, non-creator administration). Maps to 403.
var ErrForbidden = errors.New("operation not permitted")
