// Package annotate classifies batches of raw comment texts
// concurrently, preserving input order.
package annotate

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tcravens/redpen/internal/classifier"
)

// ErrNoValidInput is returned when a batch contains no usable text.
var ErrNoValidInput = errors.New("no valid comment text")

// DefaultMaxConcurrent bounds simultaneous classifier calls per batch.
const DefaultMaxConcurrent = 8

// Gateway classifies a single text.
type Gateway interface {
	Classify(ctx context.Context, text string) (*classifier.Sentiment, error)
}

// Annotated is a comment text with its classifier output.
// It exists only between annotation and storage.
type Annotated struct {
	Text     string
	Label    string
	Score    string
	Keywords string
}

// Annotator fans comment texts out to the classifier.
type Annotator struct {
	gateway       Gateway
	maxConcurrent int
}

// New creates an annotator. maxConcurrent <= 0 uses DefaultMaxConcurrent.
func New(gateway Gateway, maxConcurrent int) *Annotator {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Annotator{gateway: gateway, maxConcurrent: maxConcurrent}
}

// AnnotateBatch classifies every non-blank text concurrently and
// returns the results in the order the surviving texts appeared.
// Blank entries are dropped, not kept as placeholders. If any single
// classification fails, the whole batch fails.
func (a *Annotator) AnnotateBatch(ctx context.Context, texts []string) ([]Annotated, error) {
	var surviving []string
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			surviving = append(surviving, t)
		}
	}
	if len(surviving) == 0 {
		return nil, ErrNoValidInput
	}

	results := make([]Annotated, len(surviving))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)
	for i, text := range surviving {
		i, text := i, text
		g.Go(func() error {
			s, err := a.gateway.Classify(ctx, text)
			if err != nil {
				return err
			}
			// Each goroutine owns exactly one slot, so completion
			// order never affects output order.
			results[i] = Annotated{
				Text:     text,
				Label:    s.Label,
				Score:    s.Score,
				Keywords: s.Keywords,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// AnnotateOne classifies a single comment text.
func (a *Annotator) AnnotateOne(ctx context.Context, text string) (*Annotated, error) {
	results, err := a.AnnotateBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}
