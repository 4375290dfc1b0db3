package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"splitledger/internal/storage"
)

func TestUpsertBudgetOverwrites(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := seedGroup(t, store, alice, bob)

	// Only the creator sets budgets.
	if _, err := svc.UpsertBudget(context.Background(), bob.ID, group.ID, 2024, 3, dec(t, "500.00")); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-creator, got %v", err)
	}

	for _, limit := range []string{"500.00", "500.00", "700.00"} {
		if _, err := svc.UpsertBudget(context.Background(), alice.ID, group.ID, 2024, 3, dec(t, limit)); err != nil {
			t.Fatalf("UpsertBudget(%s) failed: %v", limit, err)
		}
	}

	budget, err := svc.GetBudget(context.Background(), bob.ID, group.ID, 2024, 3)
	if err != nil {
		t.Fatalf("GetBudget failed: %v", err)
	}
	if !budget.Limit.Equal(dec(t, "700.00")) {
		t.Errorf("expected final limit 700.00, got %s", budget.Limit)
	}

	// A zero limit is a valid cap.
	if _, err := svc.UpsertBudget(context.Background(), alice.ID, group.ID, 2024, 4, dec(t, "0")); err != nil {
		t.Errorf("zero limit rejected: %v", err)
	}
}

func TestUpsertBudgetValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	alice := mustUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	tests := []struct {
		name    string
		year    int
		month   int
		limit   string
		wantErr error
	}{
		{"month zero", 2024, 0, "100.00", ErrInvalidPeriod},
		{"month thirteen", 2024, 13, "100.00", ErrInvalidPeriod},
		{"negative limit", 2024, 6, "-1.00", ErrInvalidAmount},
		{"sub-cent limit", 2024, 6, "100.005", ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpsertBudget(context.Background(), alice.ID, group.ID, tt.year, tt.month, dec(t, tt.limit)); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSummarizeMonth(t *testing.T) {
	store := newTestStore(t)
	budgets := NewBudgetService(store)
	expenses := NewExpenseService(store)
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := seedGroup(t, store, alice, bob)

	march := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC).Unix()
	april := time.Date(2024, time.April, 2, 12, 0, 0, 0, time.UTC).Unix()

	if _, err := budgets.UpsertBudget(context.Background(), alice.ID, group.ID, 2024, 3, dec(t, "500.00")); err != nil {
		t.Fatalf("UpsertBudget failed: %v", err)
	}

	// Alice fronts 100 split equally; 20.50 of it lands in April and must
	// not count toward March.
	if _, err := expenses.CreateExpense(context.Background(), alice.ID, group.ID, ExpenseInput{
		PayerID: alice.ID,
		Amount:  dec(t, "100.00"),
		SpentAt: march,
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if _, err := expenses.CreateExpense(context.Background(), bob.ID, group.ID, ExpenseInput{
		PayerID: bob.ID,
		Amount:  dec(t, "20.50"),
		SpentAt: april,
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	summary, err := budgets.Summarize(context.Background(), bob.ID, group.ID, 2024, 3, 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !summary.TotalSpent.Equal(dec(t, "100.00")) {
		t.Errorf("expected TotalSpent 100.00, got %s", summary.TotalSpent)
	}
	if summary.BudgetLimit == nil || !summary.BudgetLimit.Equal(dec(t, "500.00")) {
		t.Errorf("expected budget limit 500.00, got %v", summary.BudgetLimit)
	}
	if summary.Remaining == nil || !summary.Remaining.Equal(dec(t, "400.00")) {
		t.Errorf("expected remaining 400.00, got %v", summary.Remaining)
	}

	net := map[string]string{alice.ID: "50", bob.ID: "-50"}
	for _, balance := range summary.Balances {
		if !balance.Net.Equal(dec(t, net[balance.UserID])) {
			t.Errorf("user %s: expected net %s, got %s", balance.UserID, net[balance.UserID], balance.Net)
		}
	}

	// A settlement inside the window closes the debt.
	if _, err := expenses.CreateSettlement(context.Background(), bob.ID, group.ID, SettlementInput{
		FromUserID: bob.ID,
		ToUserID:   alice.ID,
		Amount:     dec(t, "50.00"),
		SettledAt:  march + 86400,
	}); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	summary, err = budgets.Summarize(context.Background(), bob.ID, group.ID, 2024, 3, 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	for _, balance := range summary.Balances {
		if !balance.Net.IsZero() {
			t.Errorf("user %s: expected zero net after settlement, got %s", balance.UserID, balance.Net)
		}
	}
	// Settlements move money between members without spending any.
	if !summary.TotalSpent.Equal(dec(t, "100.00")) {
		t.Errorf("expected TotalSpent unchanged at 100.00, got %s", summary.TotalSpent)
	}

	// A mid-month start day excludes earlier spending but still closes the
	// window at the start of April.
	summary, err = budgets.Summarize(context.Background(), bob.ID, group.ID, 2024, 3, 15)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !summary.TotalSpent.IsZero() {
		t.Errorf("expected zero TotalSpent from March 15, got %s", summary.TotalSpent)
	}
}

func TestSummarizeWithoutBudget(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	alice := mustUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	summary, err := svc.Summarize(context.Background(), alice.ID, group.ID, 2024, 7, 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.BudgetLimit != nil || summary.Remaining != nil {
		t.Errorf("expected nil budget figures, got limit=%v remaining=%v", summary.BudgetLimit, summary.Remaining)
	}
	if !summary.TotalSpent.IsZero() {
		t.Errorf("expected zero TotalSpent, got %s", summary.TotalSpent)
	}

	if _, err := svc.GetBudget(context.Background(), alice.ID, group.ID, 2024, 7); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unset budget, got %v", err)
	}
}
