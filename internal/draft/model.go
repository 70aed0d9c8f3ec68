// Package draft provides the draft domain model and data access.
package draft

import "time"

// Draft represents a document under review. It is immutable once
// created; the summary is filled in at creation time.
type Draft struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Body      string    `json:"body"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Title returns the display name for the draft.
func (d *Draft) Title() string {
	if d.Summary != "" {
		return d.Summary
	}
	return "Untitled Draft"
}
