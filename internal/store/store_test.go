package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/skyra/internal/session"
)

func setupTestStore(t *testing.T, maxEntries int, idleTTL time.Duration) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := New(db, maxEntries, idleTTL)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestMigrate(t *testing.T) {
	store := setupTestStore(t, 0, 0)

	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("version = %d, want %d", version, len(migrations))
	}

	// Re-running is a no-op.
	if err := store.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestAppendAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, 0, 0)

	got, err := store.Get(ctx, "unknown")
	if err != nil {
		t.Fatalf("Get unknown: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown session should be empty, got %v", got)
	}

	at := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)
	if err := store.Append(ctx, "s1",
		session.Entry{Role: session.RoleUser, Content: "Is it good for kayaking?", CreatedAt: at},
		session.Entry{Role: session.RoleAssistant, Content: "Winds are light."},
	); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, "s2", session.Entry{Role: session.RoleUser, Content: "other"}); err != nil {
		t.Fatalf("Append s2: %v", err)
	}

	got, err = store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Content != "Is it good for kayaking?" || got[1].Role != session.RoleAssistant {
		t.Errorf("unexpected history: %+v", got)
	}
	if !got[0].CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, at)
	}
	if got[1].CreatedAt.IsZero() {
		t.Error("missing CreatedAt should be stamped")
	}

	n, err := store.CountSessions(ctx)
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if n != 2 {
		t.Errorf("sessions = %d, want 2", n)
	}
}

func TestAppend_Cap(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, 2, 0)

	for i := range 4 {
		if err := store.Append(ctx, "s", session.Entry{Role: session.RoleUser, Content: fmt.Sprintf("m%d", i)}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Get(ctx, "s")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 || got[0].Content != "m2" || got[1].Content != "m3" {
		t.Errorf("expected last two messages, got %+v", got)
	}
}

func TestDeleteExpired(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, 0, 0)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now.Add(-3 * time.Hour) }
	store.Append(ctx, "stale", session.Entry{Role: session.RoleUser, Content: "old"})
	store.now = func() time.Time { return now }
	store.Append(ctx, "live", session.Entry{Role: session.RoleUser, Content: "new"})

	n, err := store.DeleteExpired(ctx, time.Hour)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d sessions, want 1", n)
	}

	if got, _ := store.Get(ctx, "stale"); len(got) != 0 {
		t.Errorf("stale messages should be gone, got %v", got)
	}
	if got, _ := store.Get(ctx, "live"); len(got) != 1 {
		t.Errorf("live session should survive, got %v", got)
	}
}

func TestGet_HidesIdleSessions(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, 0, time.Hour)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	if err := store.Append(ctx, "s1", session.Entry{Role: session.RoleUser, Content: "first"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	store.now = func() time.Time { return now.Add(30 * time.Minute) }
	if got, _ := store.Get(ctx, "s1"); len(got) != 1 {
		t.Fatalf("session within TTL should be readable, got %v", got)
	}

	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("idle session should read as empty, got %v", got)
	}

	// Writing to an expired session starts a fresh history.
	if err := store.Append(ctx, "s1", session.Entry{Role: session.RoleUser, Content: "again"}); err != nil {
		t.Fatalf("Append after expiry: %v", err)
	}
	got, _ = store.Get(ctx, "s1")
	if len(got) != 1 || got[0].Content != "again" {
		t.Errorf("history after expiry = %+v, want only the new message", got)
	}
}
