package auth

import "time"

// User is an account holder. PasswordHash is the only stored form of the
// password; the plaintext never survives Signup or a password change.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Sessions holds the user's refresh sessions, one per device/login.
	// Populated only by lookups that need them.
	Sessions []Session
}

// Session is a persisted refresh session. Sessions are append-only: they are
// never mutated after creation and expired rows are filtered at validation
// time rather than pruned.
type Session struct {
	Token     string
	ExpiresAt int64 // epoch seconds
	CreatedAt time.Time
}

// TokenPair bundles a short-lived access token with a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
