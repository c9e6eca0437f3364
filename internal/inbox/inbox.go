// Package inbox stores contact messages sent from the portfolio.
package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MaxBodyRunes caps the length of a message body.
const MaxBodyRunes = 4000

// ErrInvalid marks a message that failed validation.
var ErrInvalid = errors.New("invalid message")

// Message is one contact form submission.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Validate checks that every field is present and the body fits.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case strings.TrimSpace(m.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalid)
	case !strings.Contains(m.Email, "@"):
		return fmt.Errorf("%w: email %q has no @", ErrInvalid, m.Email)
	case strings.TrimSpace(m.Body) == "":
		return fmt.Errorf("%w: message is required", ErrInvalid)
	case utf8.RuneCountInString(m.Body) > MaxBodyRunes:
		return fmt.Errorf("%w: message longer than %d characters", ErrInvalid, MaxBodyRunes)
	}
	return nil
}

// Store is a SQLite backed message inbox.
type Store struct {
	db   *sql.DB
	path string
}

// timeLayout has fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
`

// Open creates or opens the inbox database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create inbox dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open inbox: %w", err)
	}
	// A single connection serialises writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init inbox schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save validates m, assigns it an ID and timestamp, and stores it.
func (s *Store) Save(ctx context.Context, m Message) (Message, error) {
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Body, m.CreatedAt.Format(timeLayout))
	if err != nil {
		return Message{}, fmt.Errorf("save message: %w", err)
	}
	return m, nil
}

// List returns up to limit messages, newest first. A limit of zero or less
// returns every message.
func (s *Store) List(ctx context.Context, limit int) ([]Message, error) {
	q := `SELECT id, name, email, body, created_at FROM messages ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if m.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parse message time: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
