package comment

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository provides storage for comments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a single annotated comment on a draft.
func (r *Repository) Insert(draftID, text, label, score, keywords string) (*Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	id := uuid.NewString()
	_, err := r.db.Exec(
		"INSERT INTO comments (id, draft_id, text, sentiment_label, sentiment_score, sentiment_keywords) VALUES (?, ?, ?, ?, ?, ?)",
		id, draftID, text, label, score, keywords,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	return r.get(id)
}

// Record is one comment to persist in a batch insert.
type Record struct {
	Text     string
	Label    string
	Score    string
	Keywords string
}

// InsertBatch stores a set of annotated comments in one transaction.
// It runs only after the whole batch has been classified, so a failed
// batch leaves nothing behind.
func (r *Repository) InsertBatch(draftID string, records []Record) ([]*Comment, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = uuid.NewString()
		_, err := tx.Exec(
			"INSERT INTO comments (id, draft_id, text, sentiment_label, sentiment_score, sentiment_keywords) VALUES (?, ?, ?, ?, ?, ?)",
			ids[i], draftID, rec.Text, rec.Label, rec.Score, rec.Keywords,
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return nil, fmt.Errorf("inserting comment: %w (also failed to roll back: %v)", err, rbErr)
			}
			return nil, fmt.Errorf("inserting comment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing comments: %w", err)
	}

	comments := make([]*Comment, len(ids))
	for i, id := range ids {
		c, err := r.get(id)
		if err != nil {
			return nil, err
		}
		comments[i] = c
	}

	return comments, nil
}

// ListByDraft returns a draft's comments, newest first.
// A negative limit returns all comments.
func (r *Repository) ListByDraft(draftID string, limit int) ([]*Comment, error) {
	rows, err := r.db.Query(
		"SELECT id, draft_id, text, sentiment_label, sentiment_score, sentiment_keywords, created_at FROM comments WHERE draft_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?",
		draftID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.DraftID, &c.Text, &c.SentimentLabel, &c.SentimentScore, &c.SentimentKeywords, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// CountByDraft returns the number of comments on a draft.
func (r *Repository) CountByDraft(draftID string) (int, error) {
	var n int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM comments WHERE draft_id = ?", draftID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	return n, nil
}

// get reads back a comment by ID.
func (r *Repository) get(id string) (*Comment, error) {
	var c Comment
	err := r.db.QueryRow(
		"SELECT id, draft_id, text, sentiment_label, sentiment_score, sentiment_keywords, created_at FROM comments WHERE id = ?", id,
	).Scan(&c.ID, &c.DraftID, &c.Text, &c.SentimentLabel, &c.SentimentScore, &c.SentimentKeywords, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back comment: %w", err)
	}
	return &c, nil
}
