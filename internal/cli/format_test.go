package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tcravens/redpen/internal/draft"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestPrintJSONTo(t *testing.T) {
	var buf bytes.Buffer
	d := draft.Draft{ID: "d1", Summary: "A title"}

	if err := printJSONTo(&buf, &d); err != nil {
		t.Fatalf("printJSONTo: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"id": "d1"`) {
		t.Errorf("output missing id: %s", out)
	}
	if !strings.Contains(out, `"summary": "A title"`) {
		t.Errorf("output missing summary: %s", out)
	}
}
