package upload

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestComments(t *testing.T) {
	csv := "reviewer,comment,rating\nalice,Great work,5\nbob,Needs polish,3\n"

	got, err := Comments(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{"Great work", "Needs polish"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCommentsSkipsBlankRows(t *testing.T) {
	csv := "comment\nkeep this\n\n   \nand this\n"

	got, err := Comments(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{"keep this", "and this"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCommentsShortRows(t *testing.T) {
	// Rows missing the comment column entirely are skipped.
	csv := "reviewer,comment\nalice,Solid draft\nbob\n"

	got, err := Comments(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0] != "Solid draft" {
		t.Errorf("got %q", got)
	}
}

func TestCommentsMissingColumn(t *testing.T) {
	csv := "reviewer,feedback\nalice,text\n"

	if _, err := Comments(strings.NewReader(csv)); !errors.Is(err, ErrNoComments) {
		t.Errorf("error = %v, want ErrNoComments", err)
	}
}

func TestCommentsEmptyInput(t *testing.T) {
	for _, in := range []string{"", "comment\n", "comment\n\n  \n"} {
		if _, err := Comments(strings.NewReader(in)); !errors.Is(err, ErrNoComments) {
			t.Errorf("Comments(%q) error = %v, want ErrNoComments", in, err)
		}
	}
}

func TestCommentsBOMHeader(t *testing.T) {
	csv := "\uFEFFcomment\nworks with a BOM\n"

	got, err := Comments(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0] != "works with a BOM" {
		t.Errorf("got %q", got)
	}
}
