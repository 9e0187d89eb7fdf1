package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// refreshTokenBytes is the entropy of a refresh token; hex encoding doubles it
// to a 128-character string.
const refreshTokenBytes = 64

// GenerateRefreshToken returns an opaque 128-hex-character refresh token drawn
// from a cryptographically secure source.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Manager creates, looks up and expires refresh sessions. All session state
// lives in the store; Manager itself holds no mutable state.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerClock overrides the time source (useful for tests).
func WithManagerClock(fn func() time.Time) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.now = fn
		}
	}
}

// NewManager constructs a Manager with the given session lifetime.
func NewManager(store Store, ttl time.Duration, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession mints a refresh token, stamps it with an expiry of now+TTL in
// epoch seconds and appends it to the user's session set. If the write fails
// the session must not be treated as valid.
func (m *Manager) CreateSession(ctx context.Context, userID string) (Session, error) {
	token, err := GenerateRefreshToken()
	if err != nil {
		return Session{}, err
	}
	session := Session{
		Token:     token,
		ExpiresAt: m.now().Add(m.ttl).Unix(),
	}
	if err := m.store.Sessions(ctx).Append(ctx, userID, session); err != nil {
		return Session{}, fmt.Errorf("auth: persist session: %w", err)
	}
	return session, nil
}

// FindUserBySessionToken returns the user only if a session with exactly this
// token exists on the user's record. The caller still has to check expiry via
// IsSessionExpired.
func (m *Manager) FindUserBySessionToken(ctx context.Context, userID, token string) (*User, error) {
	if userID == "" || token == "" {
		return nil, ErrNotFound
	}
	return m.store.Users(ctx).FindByIDAndSessionToken(ctx, userID, token)
}

// IsSessionExpired reports whether the given expiry (epoch seconds) has
// passed. An expiry exactly equal to now counts as expired.
func (m *Manager) IsSessionExpired(expiresAt int64) bool {
	return expiresAt <= m.now().Unix()
}

// ValidateSession scans the user's sessions for a matching, unexpired entry.
// Both "no matching token" and "matched but expired" collapse into
// ErrSessionInvalid.
func (m *Manager) ValidateSession(user *User, token string) error {
	for _, session := range user.Sessions {
		if session.Token == token && !m.IsSessionExpired(session.ExpiresAt) {
			return nil
		}
	}
	return ErrSessionInvalid
}
