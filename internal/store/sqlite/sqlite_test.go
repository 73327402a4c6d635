package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func newTestStore(t *testing.T, setup func(*sql.DB) error) *SQLiteStore {
	t.Helper()

	s, err := NewWithSetup(":memory:", setup)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedMessage(id, chatID string) func(*sql.DB) error {
	return func(db *sql.DB) error {
		_, err := db.Exec(`INSERT INTO messages (id, chat_id) VALUES (?, ?)`, id, chatID)
		return err
	}
}

func TestUpsertReadReceiptLastWriteWins(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)

	if err := s.UpsertReadReceipt(ctx, "m1", "u1", first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertReadReceipt(ctx, "m1", "u1", second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM read_receipts WHERE message_id = 'm1' AND user_id = 'u1'`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one receipt row, got %d", count)
	}

	var readAt time.Time
	if err := s.db.QueryRow(`SELECT read_at FROM read_receipts WHERE message_id = 'm1' AND user_id = 'u1'`).Scan(&readAt); err != nil {
		t.Fatalf("read row: %v", err)
	}
	if !readAt.Equal(second) {
		t.Fatalf("expected read_at %v, got %v", second, readAt)
	}
}

func TestUpsertReadReceiptDistinctUsers(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.UpsertReadReceipt(ctx, "m1", "u1", now); err != nil {
		t.Fatalf("upsert u1: %v", err)
	}
	if err := s.UpsertReadReceipt(ctx, "m1", "u2", now); err != nil {
		t.Fatalf("upsert u2: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM read_receipts WHERE message_id = 'm1'`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two receipt rows, got %d", count)
	}
}

func TestChatForMessage(t *testing.T) {
	s := newTestStore(t, seedMessage("m1", "42"))
	ctx := context.Background()

	chatID, found, err := s.ChatForMessage(ctx, "m1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !found || chatID != "42" {
		t.Fatalf("expected chat 42, got %q found=%v", chatID, found)
	}
}

func TestChatForMessageMissingIsNotError(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	chatID, found, err := s.ChatForMessage(ctx, "ghost")
	if err != nil {
		t.Fatalf("lookup should not error for missing message: %v", err)
	}
	if found || chatID != "" {
		t.Fatalf("expected not found, got %q found=%v", chatID, found)
	}
}

func TestUpsertSurvivesMissingMessage(t *testing.T) {
	// Receipts are keyed by message id but deliberately carry no foreign key;
	// a receipt for an unknown message must still persist.
	s := newTestStore(t, nil)
	ctx := context.Background()

	if err := s.UpsertReadReceipt(ctx, "ghost", "u1", time.Now().UTC()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM read_receipts WHERE message_id = 'ghost'`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one receipt row, got %d", count)
	}
}
