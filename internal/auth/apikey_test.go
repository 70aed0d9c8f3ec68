package auth

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tcravens/redpen/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing test db: %v", err)
		}
	})
	return database
}

func TestCreateAndValidate(t *testing.T) {
	store := NewAPIKeyStore(testDB(t))

	raw, key, err := store.Create("laptop", "owner-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(raw, "rp_") {
		t.Errorf("raw key = %q, want rp_ prefix", raw)
	}
	if key.OwnerID != "owner-1" {
		t.Errorf("owner = %q", key.OwnerID)
	}

	owner, err := store.Validate(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if owner != "owner-1" {
		t.Errorf("validated owner = %q, want owner-1", owner)
	}
}

func TestValidateUnknownKey(t *testing.T) {
	store := NewAPIKeyStore(testDB(t))

	owner, err := store.Validate("rp_deadbeef")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if owner != "" {
		t.Errorf("owner = %q, want empty", owner)
	}
}

func TestCreateRequiresOwner(t *testing.T) {
	store := NewAPIKeyStore(testDB(t))

	if _, _, err := store.Create("name", ""); err == nil {
		t.Fatal("expected error for empty owner")
	}
}

func TestListAndDelete(t *testing.T) {
	store := NewAPIKeyStore(testDB(t))

	_, first, err := store.Create("one", "owner-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := store.Create("two", "owner-2"); err != nil {
		t.Fatalf("create: %v", err)
	}

	keys, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(first.ID); err == nil {
		t.Error("expected error deleting missing key")
	}
}

func TestValidateUpdatesLastUsed(t *testing.T) {
	store := NewAPIKeyStore(testDB(t))

	raw, _, err := store.Create("laptop", "owner-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Validate(raw); err != nil {
		t.Fatalf("validate: %v", err)
	}

	keys, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if keys[0].LastUsedAt == nil {
		t.Error("last_used_at not set after validation")
	}
}
