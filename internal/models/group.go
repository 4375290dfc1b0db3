package models

// Role is the membership role of a user within a group.
type Role string

const (
	// RoleCreator marks the user who created the group. Exactly one per group;
	// their membership cannot be removed while they remain creator.
	RoleCreator Role = "creator"

	// RoleMember is the default role for everyone else.
	RoleMember Role = "member"
)

// Group represents an expense-sharing group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Pokhara").
	Name string

	// Currency is the ISO-ish currency code all of the group's amounts are in.
	// Purely a label; no conversion happens anywhere.
	Currency string

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member links a user to a group. Unique per (group, user) pair.
type Member struct {
	// ID is the unique identifier for the membership row (UUID format).
	ID string

	// GroupID is the group this membership belongs to.
	GroupID string

	// UserID is the member's user ID.
	UserID string

	// Role is either RoleCreator or RoleMember.
	Role Role

	// JoinedAt is the Unix timestamp when the user joined. Membership listings
	// are ordered by this field so split remainder assignment is deterministic.
	JoinedAt int64
}
