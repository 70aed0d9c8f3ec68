// Package web provides the redpen HTTP API server.
package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/tcravens/redpen/internal/annotate"
	"github.com/tcravens/redpen/internal/auth"
	"github.com/tcravens/redpen/internal/classifier"
	"github.com/tcravens/redpen/internal/comment"
	"github.com/tcravens/redpen/internal/draft"
	"github.com/tcravens/redpen/internal/logging"
	"github.com/tcravens/redpen/internal/report"
)

// ModelGateway is the external classification/summarization capability.
type ModelGateway interface {
	Classify(ctx context.Context, text string) (*classifier.Sentiment, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// Server is the API HTTP server.
type Server struct {
	drafts    *draft.Service
	comments  *comment.Repository
	annotator *annotate.Annotator
	reports   *report.Service
	apiKeys   *auth.APIKeyStore
	mux       *http.ServeMux
}

// NewServer creates an API server over the given database and model
// gateway.
func NewServer(db *sql.DB, models ModelGateway) *Server {
	draftRepo := draft.NewRepository(db)
	commentRepo := comment.NewRepository(db)

	s := &Server{
		drafts:    draft.NewService(draftRepo, models),
		comments:  commentRepo,
		annotator: annotate.New(models, 0),
		reports:   report.NewService(draftRepo, commentRepo),
		apiKeys:   auth.NewAPIKeyStore(db),
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/drafts", s.handleAPIDrafts)
	s.mux.HandleFunc("/api/drafts/", s.handleAPIDrafts)

	return s
}

// Handler returns the full middleware chain around the mux.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(auth.RequireAPIKey(s.apiKeys, s.mux))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		return
	}
}
