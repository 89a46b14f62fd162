package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by LoadSession for names never saved.
var ErrNoSession = errors.New("session not found")

// Store persists picker sessions so scripted CLI calls can drive one state
// machine across invocations.
type Store struct {
	Dir string
}

// Session is a snapshot of a calendar service.
type Session struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Locale   string     `json:"locale"`
	View     string     `json:"view"`
	Current  time.Time  `json:"current"`
	Selected *time.Time `json:"selected,omitempty"`
	Min      *time.Time `json:"min,omitempty"`
	Max      *time.Time `json:"max,omitempty"`
	// Rendered is the page the user browsed to, which may differ from Current.
	Rendered  *time.Time `json:"rendered,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Selection is one committed date, recorded when a session reaches its final
// view.
type Selection struct {
	ID        int64     `json:"id"`
	Session   string    `json:"session"`
	Kind      string    `json:"kind"`
	Date      time.Time `json:"date"`
	Formatted string    `json:"formatted"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultDir is <config dir>/sessions.
func DefaultDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), "calpick.sqlite")
}

// Open returns a migrated handle. Callers close it.
func (s Store) Open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			name TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			locale TEXT NOT NULL,
			view TEXT NOT NULL,
			current_at TEXT NOT NULL,
			selected_at TEXT,
			min_at TEXT,
			max_at TEXT,
			rendered_at TEXT,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			kind TEXT NOT NULL,
			date_at TEXT NOT NULL,
			formatted TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_selections_session ON selections(session, id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func encodeTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func decodeTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s Store) SaveSession(ctx context.Context, sess *Session) error {
	if strings.TrimSpace(sess.Name) == "" {
		return errors.New("session name is empty")
	}
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	sess.UpdatedAt = time.Now().UTC()
	cur := sess.Current
	_, err = db.ExecContext(ctx, `
		INSERT INTO sessions (name, kind, locale, view, current_at, selected_at, min_at, max_at, rendered_at, updated_at_unixms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			locale = excluded.locale,
			view = excluded.view,
			current_at = excluded.current_at,
			selected_at = excluded.selected_at,
			min_at = excluded.min_at,
			max_at = excluded.max_at,
			rendered_at = excluded.rendered_at,
			updated_at_unixms = excluded.updated_at_unixms`,
		sess.Name, sess.Kind, sess.Locale, sess.View,
		encodeTime(&cur).String, encodeTime(sess.Selected), encodeTime(sess.Min), encodeTime(sess.Max), encodeTime(sess.Rendered),
		sess.UpdatedAt.UnixMilli(),
	)
	return err
}

func (s Store) LoadSession(ctx context.Context, name string) (*Session, error) {
	db, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		sess                     Session
		current                  string
		selected, min, max, rend sql.NullString
		updated                  int64
	)
	err = db.QueryRowContext(ctx, `
		SELECT name, kind, locale, view, current_at, selected_at, min_at, max_at, rendered_at, updated_at_unixms
		FROM sessions WHERE name = ?`, name).
		Scan(&sess.Name, &sess.Kind, &sess.Locale, &sess.View, &current, &selected, &min, &max, &rend, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, name)
	}
	if err != nil {
		return nil, err
	}
	cur, err := time.Parse(time.RFC3339Nano, current)
	if err != nil {
		return nil, fmt.Errorf("session %s: current: %w", name, err)
	}
	sess.Current = cur
	for _, f := range []struct {
		dst **time.Time
		src sql.NullString
	}{{&sess.Selected, selected}, {&sess.Min, min}, {&sess.Max, max}, {&sess.Rendered, rend}} {
		t, err := decodeTime(f.src)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", name, err)
		}
		*f.dst = t
	}
	sess.UpdatedAt = time.UnixMilli(updated).UTC()
	return &sess, nil
}

func (s Store) DeleteSession(ctx context.Context, name string) error {
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
	return err
}

// AppendSelection records a committed date and fills in ID and CreatedAt.
func (s Store) AppendSelection(ctx context.Context, sel *Selection) error {
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if sel.CreatedAt.IsZero() {
		sel.CreatedAt = time.Now().UTC()
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO selections (session, kind, date_at, formatted, created_at_unixms)
		VALUES (?, ?, ?, ?, ?)`,
		sel.Session, sel.Kind, sel.Date.Format(time.RFC3339Nano), sel.Formatted, sel.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return err
	}
	sel.ID, err = res.LastInsertId()
	return err
}

// ListSelections returns the newest selections first. limit <= 0 means all.
func (s Store) ListSelections(ctx context.Context, session string, limit int) ([]Selection, error) {
	db, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, session, kind, date_at, formatted, created_at_unixms FROM selections WHERE session = ? ORDER BY id DESC`
	args := []any{session}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		var (
			sel     Selection
			date    string
			created int64
		)
		if err := rows.Scan(&sel.ID, &sel.Session, &sel.Kind, &date, &sel.Formatted, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, err
		}
		sel.Date = t
		sel.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, sel)
	}
	return out, rows.Err()
}
