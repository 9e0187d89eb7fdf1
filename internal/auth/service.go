package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskdeck.org/internal/ids"
)

// Service bundles credential verification, session creation and access token
// issuance behind the signup/login operations.
type Service struct {
	store    Store
	signer   *Signer
	sessions *Manager
	now      func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service.
func NewService(store Store, signer *Signer, sessions *Manager, opts ...ServiceOption) *Service {
	svc := &Service{
		store:    store,
		signer:   signer,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Sessions exposes the session manager for the refresh gate.
func (s *Service) Sessions() *Manager {
	return s.sessions
}

// Signer exposes the token signer for the access gate and refresh endpoint.
func (s *Service) Signer() *Signer {
	return s.signer
}

// Signup validates the input, stores the user with a hashed password and
// returns the user together with a fresh token pair. A duplicate email
// surfaces as a per-field validation error, same as a malformed one.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*User, TokenPair, error) {
	if verr := validateSignup(in); verr != nil {
		return nil, TokenPair{}, verr
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	user := &User{
		ID:           ids.New(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		PasswordHash: hash,
	}
	if err := s.store.Users(ctx).Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, TokenPair{}, &ValidationError{Fields: map[string]string{
				"email": "Email address is already registered",
			}}
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Login verifies credentials and mints a new session plus access token. Any
// mismatch, whether the email is unknown or the password wrong, yields the
// same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*User, TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	user, err := s.store.Users(ctx).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// ChangePassword rehashes and stores a new password for the user. The hash is
// computed before the write; the old hash is never compared against the new
// plaintext.
func (s *Service) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if msg := validatePassword(newPassword); msg != "" {
		return &ValidationError{Fields: map[string]string{"password": msg}}
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.Users(ctx).UpdatePassword(ctx, userID, hash)
}

func (s *Service) issueTokens(ctx context.Context, userID string) (TokenPair, error) {
	session, err := s.sessions.CreateSession(ctx, userID)
	if err != nil {
		return TokenPair{}, err
	}
	access, err := s.signer.Issue(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: session.Token}, nil
}
