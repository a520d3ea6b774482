package theme

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryStore is a thread-safe in-memory Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	visitor    TEXT    NOT NULL,
	key        TEXT    NOT NULL,
	value      TEXT    NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (visitor, key)
)`

// SQLiteStore keeps preferences for many visitors in one SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the preference database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ForVisitor returns a Store scoped to one visitor.
func (s *SQLiteStore) ForVisitor(visitor string) Store {
	return &visitorStore{db: s.db, visitor: visitor}
}

type visitorStore struct {
	db      *sql.DB
	visitor string
}

func (v *visitorStore) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := v.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE visitor = ? AND key = ?`, v.visitor, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query preference: %w", err)
	}
	return value, true, nil
}

func (v *visitorStore) Save(ctx context.Context, key, value string) error {
	_, err := v.db.ExecContext(ctx,
		`INSERT INTO preferences (visitor, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (visitor, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		v.visitor, key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}
