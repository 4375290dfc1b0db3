package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// setupTestStore creates a temporary database for testing.
func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return store, cleanup
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()
	user := models.NewUser(username, username+"@example.com", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func mustCreateGroup(t *testing.T, store *SQLiteStore, creator *models.User) *models.Group {
	t.Helper()
	group := &models.Group{Name: "Roommates", Currency: "NPR", CreatedBy: creator.ID}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	return group
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestCreateGroupAddsCreatorMembership(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, alice)

	member, err := store.GetMember(ctx, group.ID, alice.ID)
	if err != nil {
		t.Fatalf("creator membership missing: %v", err)
	}
	if member.Role != models.RoleCreator {
		t.Errorf("creator role = %s, want %s", member.Role, models.RoleCreator)
	}

	groups, err := store.ListGroupsByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListGroupsByUser failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("expected exactly the created group, got %v", groups)
	}
}

func TestListMembersOrderedByJoinTime(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, alice)

	bob := mustCreateUser(t, store, "bob")
	carol := mustCreateUser(t, store, "carol")
	for i, u := range []*models.User{bob, carol} {
		member := &models.Member{
			GroupID:  group.ID,
			UserID:   u.ID,
			JoinedAt: group.CreatedAt + int64(i) + 1,
		}
		if err := store.AddMember(ctx, member); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}

	members, err := store.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	want := []string{alice.ID, bob.ID, carol.ID}
	if len(members) != len(want) {
		t.Fatalf("got %d members, want %d", len(members), len(want))
	}
	for i, m := range members {
		if m.UserID != want[i] {
			t.Errorf("member %d = %s, want %s", i, m.UserID, want[i])
		}
	}
}

func TestAddMemberDuplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, alice)
	bob := mustCreateUser(t, store, "bob")

	if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: bob.ID}); err != nil {
		t.Fatalf("first AddMember failed: %v", err)
	}
	err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: bob.ID})
	if !errors.Is(err, storage.ErrDuplicateEntry) {
		t.Errorf("duplicate AddMember error = %v, want ErrDuplicateEntry", err)
	}
}

func TestCategoryUniqueAndProtected(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, alice)

	category := &models.Category{GroupID: group.ID, Name: "Groceries"}
	if err := store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	err := store.CreateCategory(ctx, &models.Category{GroupID: group.ID, Name: "Groceries"})
	if !errors.Is(err, storage.ErrDuplicateEntry) {
		t.Errorf("duplicate category error = %v, want ErrDuplicateEntry", err)
	}

	expense := &models.Expense{
		GroupID:    group.ID,
		CategoryID: category.ID,
		Amount:     mustDec(t, "10.00"),
		PaidBy:     alice.ID,
		CreatedBy:  alice.ID,
		Splits:     []models.ExpenseSplit{{UserID: alice.ID, Share: mustDec(t, "10.00")}},
	}
	if err := store.CreateExpenseWithSplits(ctx, expense); err != nil {
		t.Fatalf("CreateExpenseWithSplits failed: %v", err)
	}

	err = store.DeleteCategory(ctx, category.ID)
	if !errors.Is(err, storage.ErrCategoryInUse) {
		t.Errorf("delete of referenced category error = %v, want ErrCategoryInUse", err)
	}

	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if err := store.DeleteCategory(ctx, category.ID); err != nil {
		t.Errorf("delete of unreferenced category failed: %v", err)
	}
}

func TestExpenseRoundTripKeepsExactAmounts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	group := mustCreateGroup(t, store, alice)
	if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: bob.ID}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: "momo night",
		Amount:      mustDec(t, "100.00"),
		PaidBy:      alice.ID,
		CreatedBy:   alice.ID,
		Splits: []models.ExpenseSplit{
			{UserID: alice.ID, Share: mustDec(t, "33.33")},
			{UserID: bob.ID, Share: mustDec(t, "66.67")},
		},
	}
	if err := store.CreateExpenseWithSplits(ctx, expense); err != nil {
		t.Fatalf("CreateExpenseWithSplits failed: %v", err)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !got.Amount.Equal(mustDec(t, "100.00")) {
		t.Errorf("amount = %s, want 100.00", got.Amount)
	}
	if len(got.Splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(got.Splits))
	}
	sum := decimal.Zero
	for _, split := range got.Splits {
		sum = sum.Add(split.Share)
	}
	if !sum.Equal(got.Amount) {
		t.Errorf("splits sum to %s, want %s", sum, got.Amount)
	}
	// Splits come back in insertion order.
	if got.Splits[0].UserID != alice.ID || got.Splits[1].UserID != bob.ID {
		t.Errorf("unexpected split order: %v", got.Splits)
	}
}

func TestListExpensesInWindow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, alice)

	spentAts := []int64{1000, 2000, 3000}
	for _, at := range spentAts {
		expense := &models.Expense{
			GroupID:   group.ID,
			Amount:    mustDec(t, "10.00"),
			PaidBy:    alice.ID,
			CreatedBy: alice.ID,
			SpentAt:   at,
			Splits:    []models.ExpenseSplit{{UserID: alice.ID, Share: mustDec(t, "10.00")}},
		}
		if err := store.CreateExpenseWithSplits(ctx, expense); err != nil {
			t.Fatalf("CreateExpenseWithSplits failed: %v", err)
		}
	}

	// [1000, 3000) takes the first two but not the boundary expense at 3000.
	got, err := store.ListExpensesInWindow(ctx, group.ID, 1000, 3000)
	if err != nil {
		t.Fatalf("ListExpensesInWindow failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d expenses in window, want 2", len(got))
	}
	if got[0].SpentAt != 1000 || got[1].SpentAt != 2000 {
		t.Errorf("unexpected window contents: %v, %v", got[0].SpentAt, got[1].SpentAt)
	}
}

func TestUpsertBudgetIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, alice)

	upsert := func(limit string) {
		t.Helper()
		budget := &models.BudgetPeriod{
			GroupID:   group.ID,
			Year:      2024,
			Month:     3,
			Limit:     mustDec(t, limit),
			CreatedBy: alice.ID,
		}
		if err := store.UpsertBudget(ctx, budget); err != nil {
			t.Fatalf("UpsertBudget(%s) failed: %v", limit, err)
		}
	}

	upsert("500.00")
	upsert("500.00")
	upsert("700.00")

	budget, err := store.GetBudget(ctx, group.ID, 2024, 3)
	if err != nil {
		t.Fatalf("GetBudget failed: %v", err)
	}
	if !budget.Limit.Equal(mustDec(t, "700.00")) {
		t.Errorf("limit = %s, want 700.00", budget.Limit)
	}

	// Exactly one row for the period.
	var count int
	err = store.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM budget_periods WHERE group_id = ? AND year = 2024 AND month = 3",
		group.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("budget rows = %d, want 1", count)
	}
}

func TestSettlementWindow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	group := mustCreateGroup(t, store, alice)
	if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: bob.ID}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	for _, at := range []int64{100, 200} {
		settlement := &models.Settlement{
			GroupID:    group.ID,
			FromUserID: bob.ID,
			ToUserID:   alice.ID,
			Amount:     mustDec(t, "25.00"),
			SettledAt:  at,
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
	}

	got, err := store.ListSettlementsInWindow(ctx, group.ID, 100, 200)
	if err != nil {
		t.Fatalf("ListSettlementsInWindow failed: %v", err)
	}
	if len(got) != 1 || got[0].SettledAt != 100 {
		t.Fatalf("unexpected window contents: %v", got)
	}
	if got[0].Note != "" {
		t.Errorf("note = %q, want empty", got[0].Note)
	}
}
