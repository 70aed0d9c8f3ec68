package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tcravens/redpen/internal/annotate"
	"github.com/tcravens/redpen/internal/auth"
	"github.com/tcravens/redpen/internal/comment"
	"github.com/tcravens/redpen/internal/draft"
	"github.com/tcravens/redpen/internal/report"
	"github.com/tcravens/redpen/internal/upload"
)

const defaultListLimit = 100

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// handleAPIDrafts routes /api/drafts requests.
func (s *Server) handleAPIDrafts(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/drafts")
	path = strings.TrimPrefix(path, "/")

	// /api/drafts — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListDrafts(w, r)
		case http.MethodPost:
			s.apiCreateDraft(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/drafts/{id}/comments/upload
	if id, ok := strings.CutSuffix(path, "/comments/upload"); ok {
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiUploadComments(w, r, id)
		return
	}

	// /api/drafts/{id}/comments
	if id, ok := strings.CutSuffix(path, "/comments"); ok {
		switch r.Method {
		case http.MethodGet:
			s.apiListComments(w, r, id)
		case http.MethodPost:
			s.apiAddComment(w, r, id)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/drafts/{id}/report
	if id, ok := strings.CutSuffix(path, "/report"); ok {
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiDraftReport(w, r, id)
		return
	}

	// /api/drafts/{id} — show or remove
	switch r.Method {
	case http.MethodGet:
		s.apiGetDraft(w, r, path)
	case http.MethodDelete:
		s.apiDeleteDraft(w, r, path)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiCreateDraft stores a new draft with a generated summary.
func (s *Server) apiCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		apiError(w, "draft body is required", http.StatusBadRequest)
		return
	}

	d, err := s.drafts.Create(r.Context(), auth.OwnerID(r.Context()), req.Body)
	if err != nil {
		slog.Error("creating draft", "error", err)
		apiError(w, "draft creation failed", http.StatusBadGateway)
		return
	}

	apiJSON(w, d, http.StatusCreated)
}

// apiListDrafts returns the caller's drafts, newest first.
func (s *Server) apiListDrafts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	drafts, err := s.drafts.List(auth.OwnerID(r.Context()), limit)
	if err != nil {
		slog.Error("listing drafts", "error", err)
		apiError(w, "listing drafts failed", http.StatusInternalServerError)
		return
	}
	if drafts == nil {
		drafts = []*draft.Draft{}
	}

	apiJSON(w, drafts, http.StatusOK)
}

// ShowResponse is the response from GET /api/drafts/{id}.
type ShowResponse struct {
	Draft    *draft.Draft       `json:"draft"`
	Comments []*comment.Comment `json:"comments"`
}

// apiGetDraft returns a draft with its most recent comments.
func (s *Server) apiGetDraft(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.drafts.Get(id, auth.OwnerID(r.Context()))
	if errors.Is(err, draft.ErrNotFound) {
		apiError(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("loading draft", "error", err)
		apiError(w, "loading draft failed", http.StatusInternalServerError)
		return
	}

	comments, err := s.comments.ListByDraft(d.ID, defaultListLimit)
	if err != nil {
		slog.Error("loading comments", "error", err)
		apiError(w, "loading comments failed", http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []*comment.Comment{}
	}

	apiJSON(w, ShowResponse{Draft: d, Comments: comments}, http.StatusOK)
}

// apiDeleteDraft removes a draft and its comments.
func (s *Server) apiDeleteDraft(w http.ResponseWriter, r *http.Request, id string) {
	err := s.drafts.Remove(id, auth.OwnerID(r.Context()))
	if errors.Is(err, draft.ErrNotFound) {
		apiError(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("deleting draft", "error", err)
		apiError(w, "deleting draft failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// apiAddComment annotates and stores a single comment.
func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.drafts.Get(id, auth.OwnerID(r.Context()))
	if errors.Is(err, draft.ErrNotFound) {
		apiError(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("loading draft", "error", err)
		apiError(w, "loading draft failed", http.StatusInternalServerError)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	annotated, err := s.annotator.AnnotateOne(r.Context(), req.Text)
	if errors.Is(err, annotate.ErrNoValidInput) {
		apiError(w, "comment text is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("annotating comment", "error", err)
		apiError(w, "comment classification failed", http.StatusBadGateway)
		return
	}

	c, err := s.comments.Insert(d.ID, annotated.Text, annotated.Label, annotated.Score, annotated.Keywords)
	if err != nil {
		slog.Error("saving comment", "error", err)
		apiError(w, "saving comment failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, c, http.StatusCreated)
}

// apiUploadComments parses a CSV upload, annotates every comment
// concurrently, and stores the whole batch.
func (s *Server) apiUploadComments(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.drafts.Get(id, auth.OwnerID(r.Context()))
	if errors.Is(err, draft.ErrNotFound) {
		apiError(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("loading draft", "error", err)
		apiError(w, "loading draft failed", http.StatusInternalServerError)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		apiError(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Warn("closing upload", "error", cerr)
		}
	}()

	texts, err := upload.Comments(file)
	if errors.Is(err, upload.ErrNoComments) {
		apiError(w, "no valid comments found in CSV", http.StatusBadRequest)
		return
	}
	if err != nil {
		apiError(w, "parsing CSV failed", http.StatusBadRequest)
		return
	}

	annotated, err := s.annotator.AnnotateBatch(r.Context(), texts)
	if errors.Is(err, annotate.ErrNoValidInput) {
		apiError(w, "no valid comments found in CSV", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("annotating batch", "error", err)
		apiError(w, "comment classification failed", http.StatusBadGateway)
		return
	}

	records := make([]comment.Record, len(annotated))
	for i, a := range annotated {
		records[i] = comment.Record{Text: a.Text, Label: a.Label, Score: a.Score, Keywords: a.Keywords}
	}

	comments, err := s.comments.InsertBatch(d.ID, records)
	if err != nil {
		slog.Error("saving comments", "error", err)
		apiError(w, "saving comments failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, comments, http.StatusCreated)
}

// apiListComments returns a draft's comments, newest first.
func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.drafts.Get(id, auth.OwnerID(r.Context()))
	if errors.Is(err, draft.ErrNotFound) {
		apiError(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("loading draft", "error", err)
		apiError(w, "loading draft failed", http.StatusInternalServerError)
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	comments, err := s.comments.ListByDraft(d.ID, limit)
	if err != nil {
		slog.Error("listing comments", "error", err)
		apiError(w, "listing comments failed", http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []*comment.Comment{}
	}

	apiJSON(w, comments, http.StatusOK)
}

// apiDraftReport builds the on-demand report in the requested format.
// Unrecognized formats fall back to JSON.
func (s *Server) apiDraftReport(w http.ResponseWriter, r *http.Request, id string) {
	rep, err := s.reports.Build(id, auth.OwnerID(r.Context()))
	if errors.Is(err, draft.ErrNotFound) {
		apiError(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("building report", "error", err)
		apiError(w, "building report failed", http.StatusInternalServerError)
		return
	}

	switch report.ParseFormat(r.URL.Query().Get("format")) {
	case report.FormatHTML:
		markup, err := report.RenderMarkup(rep)
		if err != nil {
			slog.Error("rendering report", "error", err)
			apiError(w, "report rendering failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(markup)); err != nil {
			slog.Warn("writing report", "error", err)
		}
	case report.FormatPDF:
		markup, err := report.RenderMarkup(rep)
		if err != nil {
			slog.Error("rendering report", "error", err)
			apiError(w, "report rendering failed", http.StatusInternalServerError)
			return
		}
		doc, err := report.MarkupToDocument(markup)
		if err != nil {
			slog.Error("rendering report pdf", "error", err)
			apiError(w, "report rendering failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		if _, err := w.Write(doc); err != nil {
			slog.Warn("writing report", "error", err)
		}
	default:
		apiJSON(w, rep, http.StatusOK)
	}
}

// parseLimit reads the limit query param (default 100, max 1000).
// Writes a 400 and returns false on invalid values.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 1000 {
		apiError(w, "limit must be 1-1000", http.StatusBadRequest)
		return 0, false
	}
	return limit, true
}
