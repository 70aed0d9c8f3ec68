package draft

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Repository provides storage for drafts.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a draft repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new draft and returns it with its generated identity.
func (r *Repository) Insert(ownerID, body, summary string) (*Draft, error) {
	if body == "" {
		return nil, fmt.Errorf("draft body is required")
	}

	id := uuid.NewString()
	_, err := r.db.Exec(
		"INSERT INTO drafts (id, owner_id, body, summary) VALUES (?, ?, ?, ?)",
		id, ownerID, body, summary,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting draft: %w", err)
	}

	var d Draft
	err = r.db.QueryRow(
		"SELECT id, owner_id, body, summary, created_at FROM drafts WHERE id = ?", id,
	).Scan(&d.ID, &d.OwnerID, &d.Body, &d.Summary, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back draft: %w", err)
	}

	return &d, nil
}

// Get returns a draft scoped to its owner, or nil if it does not
// exist or belongs to someone else.
func (r *Repository) Get(id, ownerID string) (*Draft, error) {
	var d Draft
	err := r.db.QueryRow(
		"SELECT id, owner_id, body, summary, created_at FROM drafts WHERE id = ? AND owner_id = ?",
		id, ownerID,
	).Scan(&d.ID, &d.OwnerID, &d.Body, &d.Summary, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	return &d, nil
}

// ListByOwner returns the owner's drafts, newest first.
func (r *Repository) ListByOwner(ownerID string, limit int) ([]*Draft, error) {
	rows, err := r.db.Query(
		"SELECT id, owner_id, body, summary, created_at FROM drafts WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?",
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var drafts []*Draft
	for rows.Next() {
		var d Draft
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Body, &d.Summary, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning draft: %w", err)
		}
		drafts = append(drafts, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}

	return drafts, nil
}

// Delete removes an owner's draft. Comments cascade via the schema.
// Returns false when the draft does not exist for that owner.
func (r *Repository) Delete(id, ownerID string) (bool, error) {
	result, err := r.db.Exec(
		"DELETE FROM drafts WHERE id = ? AND owner_id = ?", id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting draft: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return rows > 0, nil
}
