package library

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoSession is reported by Read when nobody is logged in, or when the
// stored record is unreadable and therefore treated as absent.
var ErrNoSession = errors.New("no active session")

// sessionKey is the fixed key the single identity record lives under.
const sessionKey = "user"

// SessionStore persists the logged-in identity across runs in a small SQLite
// file. Exactly one record exists at a time: Write overwrites wholesale,
// Clear removes it. The record is stored as plaintext JSON and trusted as the
// current identity without re-validation against the server.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens (or creates) the session database at dbPath.
func NewSessionStore(dbPath string) (*SessionStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS session (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SessionStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error { return s.db.Close() }

// Write serializes the identity and persists it, replacing any prior value.
func (s *SessionStore) Write(user *User) error {
	if user == nil {
		return fmt.Errorf("cannot store a nil identity")
	}
	value, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO session(key,value) VALUES(?,?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, sessionKey, string(value))
	if err != nil {
		return fmt.Errorf("store identity: %w", err)
	}
	return nil
}

// Read returns the persisted identity, or ErrNoSession if none exists or the
// stored value no longer parses.
func (s *SessionStore) Read() (*User, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key=?`, sessionKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		return nil, ErrNoSession
	}
	return &user, nil
}

// Clear removes the persisted identity. Clearing an empty store is a no-op.
func (s *SessionStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key=?`, sessionKey)
	return err
}
