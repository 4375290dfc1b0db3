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

// CreateCategory persists a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, group_id, name, created_at) VALUES (?, ?, ?, ?)",
		category.ID, category.GroupID, category.Name, category.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q in group %s: %w", category.Name, category.GroupID, storage.ErrDuplicateEntry)
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, name, created_at FROM categories WHERE id = ?",
		categoryID,
	).Scan(&category.ID, &category.GroupID, &category.Name, &category.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %s: %w", categoryID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories returns the group's categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context, groupID string) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, name, created_at FROM categories WHERE group_id = ? ORDER BY name",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.GroupID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes a category unless expenses still reference it.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, categoryID string) error {
	var inUse int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM expenses WHERE category_id = ?", categoryID,
	).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("category %s: %w", categoryID, storage.ErrCategoryInUse)
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", categoryID, storage.ErrNotFound)
	}
	return nil
}
