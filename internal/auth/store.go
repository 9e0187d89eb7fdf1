package auth

import "context"

// Store describes persistence operations required by the auth subsystem.
type Store interface {
	Users(ctx context.Context) UserStore
	Sessions(ctx context.Context) SessionStore
}

// UserStore manages user records.
type UserStore interface {
	// Create persists a new user. A duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByIDAndSessionToken returns the user, sessions included, only when
	// the user's session set contains an entry with exactly this token.
	FindByIDAndSessionToken(ctx context.Context, id, token string) (*User, error)
	// UpdatePassword replaces the stored hash. Callers hash before the write,
	// never after.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// SessionStore manages refresh sessions as an append-only set keyed by token.
type SessionStore interface {
	Append(ctx context.Context, userID string, s Session) error
}
