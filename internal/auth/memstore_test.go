package auth

import (
	"context"
	"sync"
)

// memStore is an in-memory Store used by service and session tests.
type memStore struct {
	mu    sync.Mutex
	users map[string]*User

	failAppend error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*User)}
}

func (m *memStore) Users(context.Context) UserStore       { return m }
func (m *memStore) Sessions(context.Context) SessionStore { return m }

func (m *memStore) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *memStore) Find(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) FindByIDAndSessionToken(_ context.Context, id, token string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, s := range u.Sessions {
		if s.Token == token {
			clone := *u
			clone.Sessions = append([]Session(nil), u.Sessions...)
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memStore) Append(_ context.Context, userID string, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend != nil {
		return m.failAppend
	}
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Sessions = append(u.Sessions, s)
	return nil
}
