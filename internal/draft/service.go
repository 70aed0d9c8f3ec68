package draft

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a draft does not exist for the caller.
var ErrNotFound = errors.New("draft not found")

// Summarizer produces a short summary for a draft body.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service provides draft business logic.
type Service struct {
	repo       *Repository
	summarizer Summarizer
}

// NewService creates a draft service.
func NewService(repo *Repository, summarizer Summarizer) *Service {
	return &Service{repo: repo, summarizer: summarizer}
}

// Create summarizes the body and stores a new draft for the owner.
// This is the only draft operation that hits the external model.
func (s *Service) Create(ctx context.Context, ownerID, body string) (*Draft, error) {
	summary, err := s.summarizer.Summarize(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("summarizing draft: %w", err)
	}

	d, err := s.repo.Insert(ownerID, body, summary)
	if err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	return d, nil
}

// Get returns the owner's draft or ErrNotFound.
func (s *Service) Get(id, ownerID string) (*Draft, error) {
	d, err := s.repo.Get(id, ownerID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

// List returns the owner's drafts, newest first.
func (s *Service) List(ownerID string, limit int) ([]*Draft, error) {
	return s.repo.ListByOwner(ownerID, limit)
}

// Remove deletes the owner's draft and its comments.
func (s *Service) Remove(id, ownerID string) error {
	deleted, err := s.repo.Delete(id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
