package server

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/playperu/spinwin/internal/database"
	"github.com/playperu/spinwin/internal/migrations"
	"github.com/playperu/spinwin/internal/prizewheel"
)

const (
	testAdminEmail    = "admin@spinwin.local"
	testAdminPassword = "changeme"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(ctx, slog.Default(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := NewSQLiteStore(db)
	if err := SeedAdmin(ctx, slog.Default(), store, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return store
}

func TestStoreRegisterIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"ana@example.com", "Ana@Example.com", "luis@example.com"} {
		if err := store.Register(ctx, prizewheel.Identifier(email)); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	subs, err := store.ListSubscribers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribers, got %d: %+v", len(subs), subs)
	}
	for _, s := range subs {
		if s.RegisteredAt == "" {
			t.Errorf("subscriber %s has no registered_at", s.Email)
		}
	}
}

func TestStoreListSubscribersEmpty(t *testing.T) {
	store := setupTestStore(t)

	subs, err := store.ListSubscribers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if subs == nil || len(subs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", subs)
	}
}

func TestStoreAdminSessionLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	adminID, hash, err := store.AdminByEmail(ctx, testAdminEmail)
	if err != nil {
		t.Fatalf("admin by email: %v", err)
	}
	if adminID == "" || hash == "" || hash == testAdminPassword {
		t.Fatalf("unexpected admin row: id=%q hash=%q", adminID, hash)
	}

	sessionID, err := store.CreateAdminSession(ctx, adminID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sess, err := store.AdminFromSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("admin from session: %v", err)
	}
	if sess.AdminID != adminID || sess.Email != testAdminEmail {
		t.Errorf("unexpected session %+v", sess)
	}

	if err := store.DeleteAdminSession(ctx, sessionID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := store.AdminFromSession(ctx, sessionID); !errors.Is(err, errNoAdminSession) {
		t.Errorf("expected errNoAdminSession after delete, got %v", err)
	}
}

func TestStoreAdminByEmailUnknown(t *testing.T) {
	store := setupTestStore(t)

	if _, _, err := store.AdminByEmail(context.Background(), "nobody@spinwin.local"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedAdminKeepsExistingPassword(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, before, _ := store.AdminByEmail(ctx, testAdminEmail)
	if err := SeedAdmin(ctx, slog.Default(), store, testAdminEmail, "other"); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	_, after, _ := store.AdminByEmail(ctx, testAdminEmail)

	if before != after {
		t.Error("expected reseeding to keep the original password hash")
	}
}

func TestSeedAdminRequiresCredentials(t *testing.T) {
	store := setupTestStore(t)

	if err := SeedAdmin(context.Background(), slog.Default(), store, " ", "x"); err == nil {
		t.Error("expected error for blank email")
	}
}
