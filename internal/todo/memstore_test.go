package todo

import (
	"context"
	"sync"
	"time"
)

// memStore is an in-memory Store used by service tests.
type memStore struct {
	mu    sync.Mutex
	lists map[string]*List
	tasks map[string]*Task
}

func newMemStore() *memStore {
	return &memStore{
		lists: make(map[string]*List),
		tasks: make(map[string]*Task),
	}
}

func (m *memStore) Lists(context.Context) ListStore { return &memLists{s: m} }
func (m *memStore) Tasks(context.Context) TaskStore { return &memTasks{s: m} }

type memLists struct{ s *memStore }

func (l *memLists) Create(_ context.Context, list *List) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	now := time.Now()
	list.CreatedAt, list.UpdatedAt = now, now
	clone := *list
	l.s.lists[list.ID] = &clone
	return nil
}

func (l *memLists) ListByUser(_ context.Context, userID string) ([]List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	out := []List{}
	for _, rec := range l.s.lists {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (l *memLists) FindOwned(_ context.Context, id, userID string) (*List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	rec, ok := l.s.lists[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (l *memLists) Update(_ context.Context, id, userID string, update ListUpdate) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	rec, ok := l.s.lists[id]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}
	if update.Title != nil {
		rec.Title = *update.Title
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func (l *memLists) Delete(_ context.Context, id, userID string) (*List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	rec, ok := l.s.lists[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	delete(l.s.lists, id)
	clone := *rec
	return &clone, nil
}

type memTasks struct{ s *memStore }

func (t *memTasks) Create(_ context.Context, task *Task) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	now := time.Now()
	task.CreatedAt, task.UpdatedAt = now, now
	clone := *task
	t.s.tasks[task.ID] = &clone
	return nil
}

func (t *memTasks) ListByList(_ context.Context, listID string) ([]Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	out := []Task{}
	for _, rec := range t.s.tasks {
		if rec.ListID == listID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (t *memTasks) Find(_ context.Context, id, listID string) (*Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rec, ok := t.s.tasks[id]
	if !ok || rec.ListID != listID {
		return nil, ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (t *memTasks) Update(_ context.Context, id, listID string, update TaskUpdate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rec, ok := t.s.tasks[id]
	if !ok || rec.ListID != listID {
		return ErrNotFound
	}
	if update.Title != nil {
		rec.Title = *update.Title
	}
	if update.Completed != nil {
		rec.Completed = *update.Completed
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func (t *memTasks) Delete(_ context.Context, id, listID string) (*Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rec, ok := t.s.tasks[id]
	if !ok || rec.ListID != listID {
		return nil, ErrNotFound
	}
	delete(t.s.tasks, id)
	clone := *rec
	return &clone, nil
}

func (t *memTasks) DeleteByList(_ context.Context, listID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id, rec := range t.s.tasks {
		if rec.ListID == listID {
			delete(t.s.tasks, id)
		}
	}
	return nil
}
