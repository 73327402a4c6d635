package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements store.ReceiptStore for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and applies the receipt schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Set connection pool limits
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply schema and seed rows without migrations.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Set connection pool limits before setup
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// migrate applies the schema this subsystem needs. The messages table is
// owned by the main product; it is created here only so the standalone
// server can boot against an empty database.
func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		chat_id    TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS read_receipts (
		message_id TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		read_at    DATETIME NOT NULL,
		PRIMARY KEY (message_id, user_id)
	);
	`
	_, err := db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertReadReceipt inserts a receipt row or refreshes its timestamp on
// conflict of the (message_id, user_id) key. The conflict clause delegates
// last-write-wins atomicity to SQLite.
func (s *SQLiteStore) UpsertReadReceipt(ctx context.Context, messageID, userID string, readAt time.Time) error {
	query := `
		INSERT INTO read_receipts (message_id, user_id, read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(message_id, user_id) DO UPDATE SET read_at = excluded.read_at
	`
	if _, err := s.db.ExecContext(ctx, query, messageID, userID, readAt.UTC()); err != nil {
		return fmt.Errorf("upsert read receipt: %w", err)
	}
	return nil
}

// ChatForMessage resolves the chat owning messageID.
// A missing message is not an error; found is false.
func (s *SQLiteStore) ChatForMessage(ctx context.Context, messageID string) (string, bool, error) {
	query := `SELECT chat_id FROM messages WHERE id = ?`

	var chatID string
	err := s.db.QueryRowContext(ctx, query, messageID).Scan(&chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup chat for message: %w", err)
	}
	return chatID, true, nil
}
