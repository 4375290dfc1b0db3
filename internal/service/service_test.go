package service

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
	"splitledger/internal/storage/sqlite"
)

// newTestStore creates a temporary database for testing.
func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "service-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return store
}

func mustUser(t *testing.T, store *sqlite.SQLiteStore, username string) *models.User {
	t.Helper()
	user := models.NewUser(username, username+"@example.com", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// seedGroup creates a group owned by the first user and adds the rest as
// members, in order.
func seedGroup(t *testing.T, store *sqlite.SQLiteStore, users ...*models.User) *models.Group {
	t.Helper()
	group := &models.Group{Name: "Flat 4B", Currency: "NPR", CreatedBy: users[0].ID}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	for i, u := range users[1:] {
		member := &models.Member{
			GroupID:  group.ID,
			UserID:   u.ID,
			Role:     models.RoleMember,
			JoinedAt: group.CreatedAt + int64(i) + 1,
		}
		if err := store.AddMember(context.Background(), member); err != nil {
			t.Fatalf("failed to add member %s: %v", u.Username, err)
		}
	}
	return group
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}
