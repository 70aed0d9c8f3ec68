// Package comment provides the comment domain model and data access.
package comment

import "time"

// Comment represents a single piece of reader feedback on a draft,
// annotated with classifier output. Comments are append-only and are
// removed only when their draft is deleted.
type Comment struct {
	ID                string    `json:"id"`
	DraftID           string    `json:"draft_id"`
	Text              string    `json:"text"`
	SentimentLabel    string    `json:"sentiment_label,omitempty"`
	SentimentScore    string    `json:"sentiment_score,omitempty"`
	SentimentKeywords string    `json:"sentiment_keywords,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
