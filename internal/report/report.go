// Package report assembles the on-demand feedback report for a draft
// and renders it to markup or a PDF document.
package report

import (
	"fmt"

	"github.com/tcravens/redpen/internal/analysis"
	"github.com/tcravens/redpen/internal/comment"
	"github.com/tcravens/redpen/internal/draft"
)

// Format selects the report output representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a requested format string onto a known format.
// Unrecognized values fall back to JSON; the report surface is
// deliberately permissive about the selector.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatHTML:
		return FormatHTML
	case FormatPDF:
		return FormatPDF
	default:
		return FormatJSON
	}
}

// DraftInfo identifies the draft a report describes.
type DraftInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatedDate string `json:"created_date"`
}

// Report is the aggregate feedback view of one draft. It is never
// persisted; every build recomputes it from the current comment set.
type Report struct {
	DraftInfo          DraftInfo                 `json:"draft_info"`
	OverallSentiment   analysis.SentimentSummary `json:"overall_sentiment"`
	CommentCount       int                       `json:"comment_count"`
	DraftLength        analysis.LengthMetrics    `json:"draft_length"`
	ReadabilityScore   analysis.ReadabilityScore `json:"readability_score"`
	FeedbackRatio      analysis.Ratio            `json:"feedback_ratio"`
	ActionableInsights []string                  `json:"actionable_insights"`
}

// Service builds reports from stored drafts and comments.
type Service struct {
	drafts   *draft.Repository
	comments *comment.Repository
}

// NewService creates a report service.
func NewService(drafts *draft.Repository, comments *comment.Repository) *Service {
	return &Service{drafts: drafts, comments: comments}
}

// Build assembles the report for an owner's draft. Returns
// draft.ErrNotFound when the draft is absent or owned by someone else.
func (s *Service) Build(draftID, ownerID string) (*Report, error) {
	d, err := s.drafts.Get(draftID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	if d == nil {
		return nil, draft.ErrNotFound
	}

	comments, err := s.comments.ListByDraft(draftID, -1)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}

	return &Report{
		DraftInfo: DraftInfo{
			ID:          d.ID,
			Title:       d.Title(),
			CreatedDate: d.CreatedAt.Format("2006-01-02 15:04"),
		},
		OverallSentiment:   analysis.OverallSentiment(comments),
		CommentCount:       len(comments),
		DraftLength:        analysis.DraftLength(d.Body),
		ReadabilityScore:   analysis.Readability(d.Body),
		FeedbackRatio:      analysis.FeedbackRatio(comments),
		ActionableInsights: analysis.Insights(comments, d.Body),
	}, nil
}
