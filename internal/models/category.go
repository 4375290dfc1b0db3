package models

// Category labels expenses within a group. Unique per (group, name).
// A category cannot be deleted while expenses still reference it.
type Category struct {
	// ID is the unique identifier for the category (UUID format).
	ID string

	// GroupID is the group this category belongs to.
	GroupID string

	// Name is the category label (e.g., "Groceries", "Rent").
	Name string

	// CreatedAt is the Unix timestamp when the category was created.
	CreatedAt int64
}
