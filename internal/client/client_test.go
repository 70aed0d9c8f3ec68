package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tcravens/redpen/internal/comment"
	"github.com/tcravens/redpen/internal/draft"
)

func TestCreateDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/drafts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if payload["body"] != "draft text" {
			t.Errorf("body = %q", payload["body"])
		}

		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(draft.Draft{ID: "d1", Body: "draft text", Summary: "A summary"}); err != nil {
			t.Fatalf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	d, err := c.CreateDraft("draft text")
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if d.ID != "d1" {
		t.Errorf("id = %q", d.ID)
	}
	if d.Summary != "A summary" {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestGetDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/drafts/d1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		resp := ShowResponse{
			Draft:    &draft.Draft{ID: "d1"},
			Comments: []*comment.Comment{{ID: "c1", Text: "nice"}},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	resp, err := c.GetDraft("d1")
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if resp.Draft.ID != "d1" {
		t.Errorf("draft id = %q", resp.Draft.ID)
	}
	if len(resp.Comments) != 1 || resp.Comments[0].Text != "nice" {
		t.Errorf("comments = %+v", resp.Comments)
	}
}

func TestListCommentsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q", got)
		}
		if err := json.NewEncoder(w).Encode([]*comment.Comment{}); err != nil {
			t.Fatalf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	if _, err := c.ListComments("d1", 5); err != nil {
		t.Fatalf("ListComments: %v", err)
	}
}

func TestUploadComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/drafts/d1/comments/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading form file: %v", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				t.Errorf("closing form file: %v", cerr)
			}
		}()
		if header.Filename != "comments.csv" {
			t.Errorf("filename = %q", header.Filename)
		}

		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode([]*comment.Comment{{ID: "c1"}, {ID: "c2"}}); err != nil {
			t.Fatalf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	comments, err := c.UploadComments("d1", "comments.csv", strings.NewReader("comment\nfirst\nsecond\n"))
	if err != nil {
		t.Fatalf("UploadComments: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("got %d comments, want 2", len(comments))
	}
}

func TestDownloadReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/drafts/d1/report" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "pdf" {
			t.Errorf("format = %q", got)
		}
		w.Header().Set("Content-Type", "application/pdf")
		if _, err := w.Write([]byte("%PDF-1.4 fake")); err != nil {
			t.Fatalf("writing response: %v", err)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	data, err := c.DownloadReport("d1", "pdf")
	if err != nil {
		t.Fatalf("DownloadReport: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("data = %q", data)
	}
}

func TestServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "draft not found"}); err != nil {
			t.Fatalf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	_, err := c.GetDraft("missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "draft not found" {
		t.Errorf("error = %q", err)
	}
}

func TestDeleteDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" || r.URL.Path != "/api/drafts/d1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	if err := c.DeleteDraft("d1"); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
}
