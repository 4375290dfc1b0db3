package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// UpsertBudget creates or overwrites the budget for (group, year, month) as a
// single atomic conditional write. The unique key serializes concurrent
// upserts; the last committed write wins and no duplicate period rows appear.
func (s *SQLiteStore) UpsertBudget(ctx context.Context, budget *models.BudgetPeriod) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt == 0 {
		budget.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_periods (id, group_id, year, month, limit_amount, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, year, month)
		 DO UPDATE SET limit_amount = excluded.limit_amount,
		               created_by = excluded.created_by,
		               created_at = excluded.created_at`,
		budget.ID, budget.GroupID, budget.Year, budget.Month,
		budget.Limit, budget.CreatedBy, budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	// Re-read so callers see the row's persistent ID after an overwrite.
	stored, err := s.GetBudget(ctx, budget.GroupID, budget.Year, budget.Month)
	if err != nil {
		return err
	}
	*budget = *stored

	return nil
}

// GetBudget retrieves the budget for (group, year, month).
func (s *SQLiteStore) GetBudget(ctx context.Context, groupID string, year, month int) (*models.BudgetPeriod, error) {
	budget := &models.BudgetPeriod{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, year, month, limit_amount, created_by, created_at
		 FROM budget_periods WHERE group_id = ? AND year = ? AND month = ?`,
		groupID, year, month,
	).Scan(&budget.ID, &budget.GroupID, &budget.Year, &budget.Month,
		&budget.Limit, &budget.CreatedBy, &budget.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget for group %s %d-%02d: %w", groupID, year, month, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}
