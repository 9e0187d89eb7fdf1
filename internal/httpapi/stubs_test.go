package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/todo"
)

// In-memory stores backing the handler tests. They mirror the Postgres
// implementations closely enough to exercise the full service stack over
// httptest without a database.

type memAuthStore struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemAuthStore() *memAuthStore {
	return &memAuthStore{users: make(map[string]*auth.User)}
}

func (m *memAuthStore) Users(context.Context) auth.UserStore       { return &memUsers{s: m} }
func (m *memAuthStore) Sessions(context.Context) auth.SessionStore { return &memSessions{s: m} }

type memUsers struct{ s *memAuthStore }

func (u *memUsers) Create(_ context.Context, user *auth.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, rec := range u.s.users {
		if rec.Email == user.Email {
			return auth.ErrEmailTaken
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	clone := *user
	u.s.users[user.ID] = &clone
	return nil
}

func (u *memUsers) Find(_ context.Context, id string) (*auth.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	rec, ok := u.s.users[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (u *memUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, rec := range u.s.users {
		if rec.Email == email {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (u *memUsers) FindByIDAndSessionToken(_ context.Context, id, token string) (*auth.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	rec, ok := u.s.users[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	for _, session := range rec.Sessions {
		if session.Token == token {
			clone := *rec
			clone.Sessions = append([]auth.Session(nil), rec.Sessions...)
			return &clone, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (u *memUsers) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	rec, ok := u.s.users[userID]
	if !ok {
		return auth.ErrNotFound
	}
	rec.PasswordHash = passwordHash
	rec.UpdatedAt = time.Now()
	return nil
}

type memSessions struct{ s *memAuthStore }

func (m *memSessions) Append(_ context.Context, userID string, session auth.Session) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rec, ok := m.s.users[userID]
	if !ok {
		return auth.ErrNotFound
	}
	session.CreatedAt = time.Now()
	rec.Sessions = append(rec.Sessions, session)
	return nil
}

type memTodoStore struct {
	mu    sync.Mutex
	lists map[string]*todo.List
	tasks map[string]*todo.Task
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{
		lists: make(map[string]*todo.List),
		tasks: make(map[string]*todo.Task),
	}
}

func (m *memTodoStore) Lists(context.Context) todo.ListStore { return &memTodoLists{s: m} }
func (m *memTodoStore) Tasks(context.Context) todo.TaskStore { return &memTodoTasks{s: m} }

type memTodoLists struct{ s *memTodoStore }

func (l *memTodoLists) Create(_ context.Context, list *todo.List) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	now := time.Now()
	list.CreatedAt, list.UpdatedAt = now, now
	clone := *list
	l.s.lists[list.ID] = &clone
	return nil
}

func (l *memTodoLists) ListByUser(_ context.Context, userID string) ([]todo.List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	out := []todo.List{}
	for _, rec := range l.s.lists {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (l *memTodoLists) FindOwned(_ context.Context, id, userID string) (*todo.List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	rec, ok := l.s.lists[id]
	if !ok || rec.UserID != userID {
		return nil, todo.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (l *memTodoLists) Update(_ context.Context, id, userID string, update todo.ListUpdate) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	rec, ok := l.s.lists[id]
	if !ok || rec.UserID != userID {
		return todo.ErrNotFound
	}
	if update.Title != nil {
		rec.Title = *update.Title
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func (l *memTodoLists) Delete(_ context.Context, id, userID string) (*todo.List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	rec, ok := l.s.lists[id]
	if !ok || rec.UserID != userID {
		return nil, todo.ErrNotFound
	}
	delete(l.s.lists, id)
	clone := *rec
	return &clone, nil
}

type memTodoTasks struct{ s *memTodoStore }

func (t *memTodoTasks) Create(_ context.Context, task *todo.Task) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	now := time.Now()
	task.CreatedAt, task.UpdatedAt = now, now
	clone := *task
	t.s.tasks[task.ID] = &clone
	return nil
}

func (t *memTodoTasks) ListByList(_ context.Context, listID string) ([]todo.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	out := []todo.Task{}
	for _, rec := range t.s.tasks {
		if rec.ListID == listID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (t *memTodoTasks) Find(_ context.Context, id, listID string) (*todo.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rec, ok := t.s.tasks[id]
	if !ok || rec.ListID != listID {
		return nil, todo.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (t *memTodoTasks) Update(_ context.Context, id, listID string, update todo.TaskUpdate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rec, ok := t.s.tasks[id]
	if !ok || rec.ListID != listID {
		return todo.ErrNotFound
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

func (t *memTodoTasks) Delete(_ context.Context, id, listID string) (*todo.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rec, ok := t.s.tasks[id]
	if !ok || rec.ListID != listID {
		return nil, todo.ErrNotFound
	}
	delete(t.s.tasks, id)
	clone := *rec
	return &clone, nil
}

func (t *memTodoTasks) DeleteByList(_ context.Context, listID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id, rec := range t.s.tasks {
		if rec.ListID == listID {
			delete(t.s.tasks, id)
		}
	}
	return nil
}

// newTestAPI wires a full API over in-memory stores. The returned clock can be
// reassigned to move time forward.
func newTestAPI(t *testing.T) (*API, *memAuthStore, *time.Time) {
	t.Helper()

	now := time.Now()
	clock := &now
	nowFn := func() time.Time { return *clock }

	signer, err := auth.NewSigner("test-secret", 15*time.Minute, auth.WithSignerClock(nowFn))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	authStore := newMemAuthStore()
	sessions := auth.NewManager(authStore, 240*time.Hour, auth.WithManagerClock(nowFn))
	authSvc := auth.NewService(authStore, signer, sessions, auth.WithClock(nowFn))
	todoSvc := todo.NewService(newMemTodoStore())

	api := New(Options{
		Auth: authSvc,
		Todo: todoSvc,
	})
	return api, authStore, clock
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
