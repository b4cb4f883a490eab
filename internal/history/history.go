// Package history stores the REPL transcript in a SQL database and serves
// it back to the line editor for recall.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	tableName = "easycode_history"

	// timeLayout sorts lexically in the same order as the times it encodes.
	timeLayout = "2006-01-02T15:04:05.000000000Z"

	maxText = 4000
)

type Entry struct {
	Session   string
	Seq       int
	Source    string
	Outcome   string
	Failed    bool
	CreatedAt time.Time
}

type Store struct {
	db      *sql.DB
	dialect dialect
	session string

	mu    sync.Mutex
	seq   int
	lines []string
}

// Open connects to dsn through driver, creates the history table when it
// is missing and loads the stored lines for recall.
func Open(ctx context.Context, driver, dsn, session string) (*Store, error) {
	d, ok := drivers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported history driver %q (supported: %v)", driver, Drivers())
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if session == "" {
		session = time.Now().UTC().Format("20060102T150405.000")
	}
	s := &Store{db: db, dialect: d, session: session}

	if err := s.ensureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.load(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("history opened",
		slog.String("driver", driver),
		slog.String("session", session),
		slog.Int("lines", len(s.lines)))
	return s, nil
}

func (s *Store) Session() string { return s.session }

func (s *Store) ensureTable(ctx context.Context) error {
	probe := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1 = 0", tableName)
	var n int
	if err := s.db.QueryRowContext(ctx, probe).Scan(&n); err == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable()); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) error {
	entries, err := s.Entries(ctx, 0)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.lines = append(s.lines, e.Source)
		if e.Session == s.session && e.Seq > s.seq {
			s.seq = e.Seq
		}
	}
	return nil
}

// Record stores one submitted line and its outcome under the current
// session. Seq and CreatedAt are assigned by the store.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	s.seq++
	e.Session = s.session
	e.Seq = s.seq
	s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	failed := 0
	if e.Failed {
		failed = 1
	}
	query := fmt.Sprintf("INSERT INTO %s (session_id, seq, source_text, outcome, failed, created_at) VALUES (%s)",
		tableName, s.dialect.placeholders(6))
	_, err := s.db.ExecContext(ctx, query,
		e.Session, e.Seq, truncate(e.Source), truncate(e.Outcome), failed,
		e.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return e, fmt.Errorf("failed to record history entry: %w", err)
	}
	slog.Debug("history recorded", slog.String("session", e.Session), slog.Int("seq", e.Seq), slog.Bool("failed", e.Failed))
	return e, nil
}

// Entries returns the stored entries of every session, oldest first. A
// positive limit keeps only the most recent ones.
func (s *Store) Entries(ctx context.Context, limit int) ([]Entry, error) {
	query := fmt.Sprintf("SELECT session_id, seq, source_text, outcome, failed, created_at FROM %s ORDER BY created_at, seq",
		tableName)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			outcome   sql.NullString
			failed    int
			createdAt string
		)
		if err := rows.Scan(&e.Session, &e.Seq, &e.Source, &outcome, &failed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to read history row: %w", err)
		}
		e.Outcome = outcome.String
		e.Failed = failed != 0
		e.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func truncate(text string) string {
	if len(text) <= maxText {
		return text
	}
	cut := maxText
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// The methods below let the store back the line editor's up arrow recall.
// Lines written here are only remembered in memory; Record persists them.

func (s *Store) Write(line string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return len(s.lines), nil
}

func (s *Store) GetLine(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.lines) {
		return "", errors.New("history index out of range")
	}
	return s.lines[i], nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) Dump() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}
