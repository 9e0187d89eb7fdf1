package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Users(context.Context) UserStore       { return &userStore{db: s.db} }
func (s *PGStore) Sessions(context.Context) SessionStore { return &sessionStore{db: s.db} }

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// User store ---------------------------------------------------------------
type userStore struct{ db *sql.DB }

func (s *userStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx,
		`insert into users(id, first_name, last_name, email, password_hash) values($1,$2,$3,$4,$5)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *userStore) Find(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx,
		`select id, first_name, last_name, email, password_hash, created_at, updated_at
		 from users where id=$1`, id)
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx,
		`select id, first_name, last_name, email, password_hash, created_at, updated_at
		 from users where email=$1`, email)
}

func (s *userStore) FindByIDAndSessionToken(ctx context.Context, id, token string) (*User, error) {
	user, err := s.findOne(ctx,
		`select u.id, u.first_name, u.last_name, u.email, u.password_hash, u.created_at, u.updated_at
		 from users u
		 where u.id=$1 and exists (
			select 1 from sessions s where s.user_id = u.id and s.token = $2
		 )`, id, token)
	if err != nil {
		return nil, err
	}
	sessions, err := s.loadSessions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Sessions = sessions
	return user, nil
}

func (s *userStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`update users set password_hash=$1, updated_at=now() where id=$2`,
		passwordHash, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userStore) findOne(ctx context.Context, query string, args ...any) (*User, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	var (
		u        User
		lastName sql.NullString
	)
	if err := row.Scan(&u.ID, &u.FirstName, &lastName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.LastName = lastName.String
	return &u, nil
}

func (s *userStore) loadSessions(ctx context.Context, userID string) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`select token, expires_at, created_at from sessions where user_id=$1 order by created_at asc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.Token, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Session store ------------------------------------------------------------
type sessionStore struct{ db *sql.DB }

// Append is a single insert, so concurrent logins for the same user never
// conflict: the session set grows atomically without a read-modify-write.
func (s *sessionStore) Append(ctx context.Context, userID string, sess Session) error {
	_, err := s.db.ExecContext(ctx,
		`insert into sessions(user_id, token, expires_at) values($1,$2,$3)`,
		userID, sess.Token, sess.ExpiresAt,
	)
	return err
}
