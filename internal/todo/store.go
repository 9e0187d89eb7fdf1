package todo

import "context"

// Store describes persistence operations required by the todo subsystem.
type Store interface {
	Lists(ctx context.Context) ListStore
	Tasks(ctx context.Context) TaskStore
}

// ListStore manages list records. Every query that addresses a single list is
// keyed by (id, userID) so ownership is enforced at the store boundary.
type ListStore interface {
	Create(ctx context.Context, list *List) error
	ListByUser(ctx context.Context, userID string) ([]List, error)
	// FindOwned returns the list only when it is owned by userID; a missing
	// or foreign list yields ErrNotFound.
	FindOwned(ctx context.Context, id, userID string) (*List, error)
	Update(ctx context.Context, id, userID string, update ListUpdate) error
	// Delete removes the list and returns the removed record.
	Delete(ctx context.Context, id, userID string) (*List, error)
}

// TaskStore manages task records. Callers must have resolved the owned parent
// list first; all queries are scoped by listID.
type TaskStore interface {
	Create(ctx context.Context, task *Task) error
	ListByList(ctx context.Context, listID string) ([]Task, error)
	Find(ctx context.Context, id, listID string) (*Task, error)
	Update(ctx context.Context, id, listID string, update TaskUpdate) error
	Delete(ctx context.Context, id, listID string) (*Task, error)
	DeleteByList(ctx context.Context, listID string) error
}
