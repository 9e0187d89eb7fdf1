package todo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Lists(context.Context) ListStore { return &listStore{db: s.db} }
func (s *PGStore) Tasks(context.Context) TaskStore { return &taskStore{db: s.db} }

// List store ---------------------------------------------------------------
type listStore struct{ db *sql.DB }

func (s *listStore) Create(ctx context.Context, list *List) error {
	row := s.db.QueryRowContext(ctx,
		`insert into lists(id, user_id, title) values($1,$2,$3) returning created_at, updated_at`,
		list.ID, list.UserID, list.Title,
	)
	return row.Scan(&list.CreatedAt, &list.UpdatedAt)
}

func (s *listStore) ListByUser(ctx context.Context, userID string) ([]List, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, title, user_id, created_at, updated_at from lists where user_id=$1 order by created_at asc`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []List{}
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.Title, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (s *listStore) FindOwned(ctx context.Context, id, userID string) (*List, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, title, user_id, created_at, updated_at from lists where id=$1 and user_id=$2`,
		id, userID)
	var l List
	if err := row.Scan(&l.ID, &l.Title, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *listStore) Update(ctx context.Context, id, userID string, update ListUpdate) error {
	sets, args := buildSet(map[string]any{"title": deref(update.Title)})
	if len(args) == 0 {
		return nil
	}
	args = append(args, id, userID)
	res, err := s.db.ExecContext(ctx,
		`update lists set `+sets+`, updated_at=now() where id=$`+strconv.Itoa(len(args)-1)+` and user_id=$`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *listStore) Delete(ctx context.Context, id, userID string) (*List, error) {
	row := s.db.QueryRowContext(ctx,
		`delete from lists where id=$1 and user_id=$2 returning id, title, user_id, created_at, updated_at`,
		id, userID)
	var l List
	if err := row.Scan(&l.ID, &l.Title, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Task store ---------------------------------------------------------------
type taskStore struct{ db *sql.DB }

func (s *taskStore) Create(ctx context.Context, task *Task) error {
	row := s.db.QueryRowContext(ctx,
		`insert into tasks(id, list_id, title) values($1,$2,$3) returning completed, created_at, updated_at`,
		task.ID, task.ListID, task.Title,
	)
	return row.Scan(&task.Completed, &task.CreatedAt, &task.UpdatedAt)
}

func (s *taskStore) ListByList(ctx context.Context, listID string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, title, completed, list_id, created_at, updated_at from tasks where list_id=$1 order by created_at asc`,
		listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.ListID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *taskStore) Find(ctx context.Context, id, listID string) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, title, completed, list_id, created_at, updated_at from tasks where id=$1 and list_id=$2`,
		id, listID)
	var t Task
	if err := row.Scan(&t.ID, &t.Title, &t.Completed, &t.ListID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *taskStore) Update(ctx context.Context, id, listID string, update TaskUpdate) error {
	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Completed != nil {
		fields["completed"] = *update.Completed
	}
	sets, args := buildSet(fields)
	if len(args) == 0 {
		return nil
	}
	args = append(args, id, listID)
	res, err := s.db.ExecContext(ctx,
		`update tasks set `+sets+`, updated_at=now() where id=$`+strconv.Itoa(len(args)-1)+` and list_id=$`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *taskStore) Delete(ctx context.Context, id, listID string) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`delete from tasks where id=$1 and list_id=$2 returning id, title, completed, list_id, created_at, updated_at`,
		id, listID)
	var t Task
	if err := row.Scan(&t.ID, &t.Title, &t.Completed, &t.ListID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *taskStore) DeleteByList(ctx context.Context, listID string) error {
	_, err := s.db.ExecContext(ctx, `delete from tasks where list_id=$1`, listID)
	return err
}

// helpers ------------------------------------------------------------------

func buildSet(fields map[string]any) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, col := range []string{"title", "completed"} {
		v, ok := fields[col]
		if !ok || v == nil {
			continue
		}
		args = append(args, v)
		parts = append(parts, col+"=$"+strconv.Itoa(len(args)))
	}
	return strings.Join(parts, ", "), args
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
