// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"splitledger/internal/models"
)

// Sentinel errors shared by all storage backends. Services and the API layer
// match on these with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrCategoryInUse is returned when deleting a category that expenses
	// still reference (protect-on-delete).
	ErrCategoryInUse = errors.New("category has expenses referencing it")
)

// Store defines the interface for ledger storage operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without changing
// the service layer. All list methods return fully materialized collections;
// nothing re-queries lazily mid-computation.
type Store interface {
	// CreateUser persists a new user. Fails with ErrDuplicateEntry if the
	// email or username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUsername retrieves a user by username, or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateUser updates username/email of an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// CreateGroup persists a group together with its creator membership
	// (role=creator) in one transaction.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, or ErrNotFound.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByUser returns every group the user is a member of.
	ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error)

	// UpdateGroup updates name and currency of an existing group.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and everything it owns.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember inserts a membership row. Fails with ErrDuplicateEntry if the
	// user already belongs to the group.
	AddMember(ctx context.Context, member *models.Member) error

	// RemoveMember deletes the (group, user) membership, or ErrNotFound.
	RemoveMember(ctx context.Context, groupID, userID string) error

	// GetMember retrieves the membership for (group, user), or ErrNotFound.
	GetMember(ctx context.Context, groupID, userID string) (*models.Member, error)

	// ListMembers returns the group's current members ordered by join time.
	// The split engine relies on this ordering for deterministic remainder
	// assignment.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)

	// CreateCategory persists a category. Fails with ErrDuplicateEntry if the
	// (group, name) pair exists.
	CreateCategory(ctx context.Context, category *models.Category) error

	// GetCategory retrieves a category by ID, or ErrNotFound.
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)

	// ListCategories returns the group's categories ordered by name.
	ListCategories(ctx context.Context, groupID string) ([]*models.Category, error)

	// DeleteCategory removes a category, or ErrCategoryInUse while expenses
	// still reference it.
	DeleteCategory(ctx context.Context, categoryID string) error

	// CreateExpenseWithSplits persists an expense and all of its splits in one
	// transaction; either everything commits or nothing does.
	CreateExpenseWithSplits(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits, or ErrNotFound.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns the group's expenses with splits, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesInWindow returns expenses (with splits) whose spent_at falls
	// in [start, end), given as Unix seconds.
	ListExpensesInWindow(ctx context.Context, groupID string, start, end int64) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup returns the group's settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ListSettlementsInWindow returns settlements whose settled_at falls in
	// [start, end), given as Unix seconds.
	ListSettlementsInWindow(ctx context.Context, groupID string, start, end int64) ([]*models.Settlement, error)

	// UpsertBudget atomically creates or overwrites the budget for the
	// (group, year, month) key. Concurrent upserts serialize on the unique
	// key; the last committed write wins and no duplicate rows appear.
	UpsertBudget(ctx context.Context, budget *models.BudgetPeriod) error

	// GetBudget retrieves the budget for (group, year, month), or ErrNotFound.
	GetBudget(ctx context.Context, groupID string, year, month int) (*models.BudgetPeriod, error)

	// Close releases any resources held by the store.
	Close() error
}
