package service

import (
	"context"
	"fmt"
	"log/slog"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// GroupService manages groups, memberships and categories. All operations
// take the acting user explicitly; nothing is carried in ambient state.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// requireMember loads the group and verifies the actor belongs to it.
func requireMember(ctx context.Context, store storage.Store, groupID, actorID string) (*models.Group, error) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := store.GetMember(ctx, groupID, actorID); err != nil {
		return nil, fmt.Errorf("%w: not a member of group %s", ErrForbidden, groupID)
	}
	return group, nil
}

// requireCreator loads the group and verifies the actor created it.
func requireCreator(ctx context.Context, store storage.Store, groupID, actorID string) (*models.Group, error) {
	group, err := requireMember(ctx, store, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != actorID {
		return nil, fmt.Errorf("%w: only the group creator may do this", ErrForbidden)
	}
	return group, nil
}

// CreateGroup creates a group; the actor becomes its creator member.
func (s *GroupService) CreateGroup(ctx context.Context, actorID, name, currency string) (*models.Group, error) {
	group := &models.Group{
		Name:      name,
		Currency:  currency,
		CreatedBy: actorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "actor", actorID, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "creator", actorID)
	return group, nil
}

// GetGroup retrieves a group the actor belongs to, with its member list.
func (s *GroupService) GetGroup(ctx context.Context, actorID, groupID string) (*models.Group, []*models.Member, error) {
	group, err := requireMember(ctx, s.store, groupID, actorID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, members, nil
}

// ListGroups returns every group the actor belongs to.
func (s *GroupService) ListGroups(ctx context.Context, actorID string) ([]*models.Group, error) {
	return s.store.ListGroupsByUser(ctx, actorID)
}

// UpdateGroup renames a group or changes its currency label. Creator only.
func (s *GroupService) UpdateGroup(ctx context.Context, actorID, groupID, name, currency string) (*models.Group, error) {
	group, err := requireCreator(ctx, s.store, groupID, actorID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		group.Name = name
	}
	if currency != "" {
		group.Currency = currency
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("Group updated", "group_id", groupID, "actor", actorID)
	return group, nil
}

// DeleteGroup removes a group and everything it owns. Creator only.
func (s *GroupService) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	if _, err := requireCreator(ctx, s.store, groupID, actorID); err != nil {
		return err
	}
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", groupID, "actor", actorID)
	return nil
}

// AddMember adds a user to the group by username. Creator only. Adding an
// existing member is not an error; the second return reports whether a new
// membership was created.
func (s *GroupService) AddMember(ctx context.Context, actorID, groupID, username string) (*models.Member, bool, error) {
	if _, err := requireCreator(ctx, s.store, groupID, actorID); err != nil {
		return nil, false, err
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}

	member := &models.Member{
		GroupID: groupID,
		UserID:  user.ID,
		Role:    models.RoleMember,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		if existing, getErr := s.store.GetMember(ctx, groupID, user.ID); getErr == nil {
			return existing, false, nil
		}
		return nil, false, err
	}

	slog.Info("Member added", "group_id", groupID, "user_id", user.ID, "actor", actorID)
	return member, true, nil
}

// RemoveMember deletes a membership. Creator only; the creator's own
// membership is never removable.
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, userID string) error {
	group, err := requireCreator(ctx, s.store, groupID, actorID)
	if err != nil {
		return err
	}
	if userID == group.CreatedBy {
		return ErrCreatorNotRemovable
	}

	if err := s.store.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}

	slog.Info("Member removed", "group_id", groupID, "user_id", userID, "actor", actorID)
	return nil
}

// CreateCategory adds an expense label to the group. Any member may do this;
// names are unique within the group.
func (s *GroupService) CreateCategory(ctx context.Context, actorID, groupID, name string) (*models.Category, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}

	category := &models.Category{GroupID: groupID, Name: name}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	slog.Info("Category created", "group_id", groupID, "category_id", category.ID, "name", name)
	return category, nil
}

// ListCategories returns the group's categories ordered by name.
func (s *GroupService) ListCategories(ctx context.Context, actorID, groupID string) ([]*models.Category, error) {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return nil, err
	}
	return s.store.ListCategories(ctx, groupID)
}

// DeleteCategory removes a category; fails while expenses still reference it.
func (s *GroupService) DeleteCategory(ctx context.Context, actorID, groupID, categoryID string) error {
	if _, err := requireMember(ctx, s.store, groupID, actorID); err != nil {
		return err
	}

	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.GroupID != groupID {
		return fmt.Errorf("category %s: %w", categoryID, storage.ErrNotFound)
	}

	return s.store.DeleteCategory(ctx, categoryID)
}
