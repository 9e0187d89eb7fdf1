package todo

import (
	"context"
	"fmt"
	"strings"

	"taskdeck.org/internal/ids"
)

// Service applies the ownership rules on top of the store: lists are filtered
// by the acting user, tasks by an owned parent list.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Lists returns all lists owned by the user.
func (s *Service) Lists(ctx context.Context, userID string) ([]List, error) {
	return s.store.Lists(ctx).ListByUser(ctx, userID)
}

// CreateList creates a list owned by the user.
func (s *Service) CreateList(ctx context.Context, userID, title string) (*List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	list := &List{
		ID:     ids.New(),
		Title:  title,
		UserID: userID,
	}
	if err := s.store.Lists(ctx).Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// List returns a single list the user owns.
func (s *Service) List(ctx context.Context, userID, listID string) (*List, error) {
	return s.ownedList(ctx, userID, listID)
}

// UpdateList renames a list the user owns. A missing or foreign list yields
// ErrNotFound.
func (s *Service) UpdateList(ctx context.Context, userID, listID string, update ListUpdate) error {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		update.Title = &trimmed
	}
	return s.store.Lists(ctx).Update(ctx, listID, userID, update)
}

// DeleteList removes an owned list and every task in it, returning the
// removed list.
func (s *Service) DeleteList(ctx context.Context, userID, listID string) (*List, error) {
	removed, err := s.store.Lists(ctx).Delete(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Tasks(ctx).DeleteByList(ctx, removed.ID); err != nil {
		return nil, err
	}
	return removed, nil
}

// Tasks returns the tasks of a list the user owns.
func (s *Service) Tasks(ctx context.Context, userID, listID string) ([]Task, error) {
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	return s.store.Tasks(ctx).ListByList(ctx, list.ID)
}

// Task returns a single task from a list the user owns.
func (s *Service) Task(ctx context.Context, userID, listID, taskID string) (*Task, error) {
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	return s.store.Tasks(ctx).Find(ctx, taskID, list.ID)
}

// CreateTask adds a task to a list the user owns.
func (s *Service) CreateTask(ctx context.Context, userID, listID, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	task := &Task{
		ID:     ids.New(),
		Title:  title,
		ListID: list.ID,
	}
	if err := s.store.Tasks(ctx).Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask patches a task inside a list the user owns.
func (s *Service) UpdateTask(ctx context.Context, userID, listID, taskID string, update TaskUpdate) error {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		update.Title = &trimmed
	}
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return err
	}
	return s.store.Tasks(ctx).Update(ctx, taskID, list.ID, update)
}

// DeleteTask removes a task from a list the user owns and returns the removed
// record.
func (s *Service) DeleteTask(ctx context.Context, userID, listID, taskID string) (*Task, error) {
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	return s.store.Tasks(ctx).Delete(ctx, taskID, list.ID)
}

// ownedList resolves the parent list in a single tagged lookup: either the
// owned list or ErrNotFound, never a bare boolean.
func (s *Service) ownedList(ctx context.Context, userID, listID string) (*List, error) {
	return s.store.Lists(ctx).FindOwned(ctx, listID, userID)
}
