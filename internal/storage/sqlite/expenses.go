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

// CreateExpenseWithSplits persists an expense and all of its splits in a
// single transaction. Either everything commits or nothing does; a partial
// split set is never visible.
func (s *SQLiteStore) CreateExpenseWithSplits(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.SpentAt == 0 {
		expense.SpentAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var categoryID interface{} = nil
	if expense.CategoryID != "" {
		categoryID = expense.CategoryID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, category_id, description, amount, paid_by, created_by, spent_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, categoryID, expense.Description, expense.Amount,
		expense.PaidBy, expense.CreatedBy, expense.SpentAt, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (id, expense_id, user_id, share) VALUES (?, ?, ?, ?)",
			split.ID, split.ExpenseID, split.UserID, split.Share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var categoryID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, category_id, description, amount, paid_by, created_by, spent_at, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &categoryID, &expense.Description, &expense.Amount,
		&expense.PaidBy, &expense.CreatedBy, &expense.SpentAt, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if categoryID.Valid {
		expense.CategoryID = categoryID.String
	}

	splits, err := s.listSplits(ctx, []string{expense.ID})
	if err != nil {
		return nil, err
	}
	expense.Splits = splits[expense.ID]

	return expense, nil
}

// ListExpensesByGroup returns the group's expenses with splits, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, category_id, description, amount, paid_by, created_by, spent_at, created_at
		 FROM expenses WHERE group_id = ? ORDER BY spent_at DESC, rowid DESC`,
		groupID,
	)
}

// ListExpensesInWindow returns expenses whose spent_at falls in [start, end).
func (s *SQLiteStore) ListExpensesInWindow(ctx context.Context, groupID string, start, end int64) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, category_id, description, amount, paid_by, created_by, spent_at, created_at
		 FROM expenses WHERE group_id = ? AND spent_at >= ? AND spent_at < ? ORDER BY spent_at, rowid`,
		groupID, start, end,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	var ids []string
	for rows.Next() {
		expense := &models.Expense{}
		var categoryID sql.NullString
		if err := rows.Scan(&expense.ID, &expense.GroupID, &categoryID, &expense.Description, &expense.Amount,
			&expense.PaidBy, &expense.CreatedBy, &expense.SpentAt, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if categoryID.Valid {
			expense.CategoryID = categoryID.String
		}
		expenses = append(expenses, expense)
		ids = append(ids, expense.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	splits, err := s.listSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		expense.Splits = splits[expense.ID]
	}

	return expenses, nil
}

// listSplits fetches the splits for the given expense IDs in one query,
// keyed by expense ID and ordered by creation.
func (s *SQLiteStore) listSplits(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseSplit, error) {
	result := make(map[string][]models.ExpenseSplit, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	query := "SELECT id, expense_id, user_id, share FROM expense_splits WHERE expense_id IN (?" +
		repeatPlaceholder(len(expenseIDs)-1) + ") ORDER BY rowid"
	args := make([]interface{}, len(expenseIDs))
	for i, id := range expenseIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Share); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		result[split.ExpenseID] = append(result[split.ExpenseID], split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return result, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += ", ?"
	}
	return result
}
