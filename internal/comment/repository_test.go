package comment

import (
	"database/sql"
	"fmt"
	"path/filepath"
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

// insertDraft satisfies the comments foreign key.
func insertDraft(t *testing.T, database *sql.DB, id string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO drafts (id, owner_id, body) VALUES (?, 'owner-1', 'body')", id,
	)
	if err != nil {
		t.Fatalf("inserting draft: %v", err)
	}
}

func TestInsertAndList(t *testing.T) {
	database := testDB(t)
	insertDraft(t, database, "d-1")
	repo := NewRepository(database)

	c, err := repo.Insert("d-1", "Well argued.", "positive", "0.9", "well, argued")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID == "" {
		t.Error("expected generated ID")
	}
	if c.SentimentLabel != "positive" || c.SentimentScore != "0.9" {
		t.Errorf("got %+v", c)
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	comments, err := repo.ListByDraft("d-1", 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
}

func TestInsertRequiresText(t *testing.T) {
	database := testDB(t)
	insertDraft(t, database, "d-1")
	repo := NewRepository(database)

	if _, err := repo.Insert("d-1", "", "", "", ""); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestInsertBatch(t *testing.T) {
	database := testDB(t)
	insertDraft(t, database, "d-1")
	repo := NewRepository(database)

	records := []Record{
		{Text: "first", Label: "positive", Score: "0.8"},
		{Text: "second", Label: "negative", Score: "0.2"},
		{Text: "third", Label: "neutral", Score: "0.5"},
	}

	comments, err := repo.InsertBatch("d-1", records)
	if err != nil {
		t.Fatalf("insert batch: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	for i, c := range comments {
		if c.Text != records[i].Text {
			t.Errorf("comments[%d].Text = %q, want %q", i, c.Text, records[i].Text)
		}
	}

	n, err := repo.CountByDraft("d-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestInsertBatchRollsBackOnFailure(t *testing.T) {
	database := testDB(t)
	insertDraft(t, database, "d-1")
	repo := NewRepository(database)

	// The second record violates the draft foreign key indirectly:
	// batch inserts against a missing draft must leave nothing behind.
	_, err := repo.InsertBatch("no-such-draft", []Record{
		{Text: "first"},
		{Text: "second"},
	})
	if err == nil {
		t.Fatal("expected error for unknown draft")
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM comments").Scan(&count); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 0 {
		t.Errorf("comments remaining after rollback: %d", count)
	}
}

func TestListByDraftNewestFirst(t *testing.T) {
	database := testDB(t)
	insertDraft(t, database, "d-1")
	repo := NewRepository(database)

	for i := 0; i < 5; i++ {
		if _, err := repo.Insert("d-1", fmt.Sprintf("comment %d", i), "", "", ""); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	comments, err := repo.ListByDraft("d-1", 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 5 {
		t.Fatalf("got %d comments, want 5", len(comments))
	}
	if comments[0].Text != "comment 4" || comments[4].Text != "comment 0" {
		t.Errorf("order = %q ... %q", comments[0].Text, comments[4].Text)
	}

	limited, err := repo.ListByDraft("d-1", 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d comments, want 2", len(limited))
	}
}

func TestListByDraftScoped(t *testing.T) {
	database := testDB(t)
	insertDraft(t, database, "d-1")
	insertDraft(t, database, "d-2")
	repo := NewRepository(database)

	if _, err := repo.Insert("d-1", "on draft one", "", "", ""); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert("d-2", "on draft two", "", "", ""); err != nil {
		t.Fatalf("insert: %v", err)
	}

	comments, err := repo.ListByDraft("d-1", 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 1 || comments[0].Text != "on draft one" {
		t.Errorf("got %+v", comments)
	}
}
