package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatResponse builds an OpenAI-style chat completion response body.
func chatResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New("test-key", server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, server
}

func TestClassify(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatResponse(`{"sentiment_analysis": "Positive", "sentiment_score": "0.9", "sentiment_keywords": "great, clear"}`))
	})

	s, err := c.Classify(context.Background(), "Great article, very clear.")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	if s.Label != "positive" {
		t.Errorf("label = %q, want %q", s.Label, "positive")
	}
	if s.Score != "0.9" {
		t.Errorf("score = %q, want %q", s.Score, "0.9")
	}
	if s.Keywords != "great, clear" {
		t.Errorf("keywords = %q", s.Keywords)
	}
}

func TestClassifyServerError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.Classify(context.Background(), "some comment"); err == nil {
		t.Fatal("expected error on server failure")
	}
}

func TestClassifyMalformedJSON(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatResponse("not json at all"))
	})

	if _, err := c.Classify(context.Background(), "some comment"); err == nil {
		t.Fatal("expected error on malformed classification output")
	}
}

func TestSummarize(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatResponse("  A short summary of the draft.\n"))
	})

	summary, err := c.Summarize(context.Background(), "A long draft body ...")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != "A short summary of the draft." {
		t.Errorf("summary = %q", summary)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
