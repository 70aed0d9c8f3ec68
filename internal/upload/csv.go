// Package upload parses bulk comment uploads.
package upload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoComments is returned when an upload holds no usable rows.
var ErrNoComments = errors.New("no valid comments found in upload")

// Comments extracts comment texts from a CSV stream. The header row
// must contain a column named "comment"; rows blank in that column
// are skipped and no other column is read.
func Comments(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoComments
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	column := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")) == "comment" {
			column = i
			break
		}
	}
	if column == -1 {
		return nil, ErrNoComments
	}

	var texts []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if column >= len(row) {
			continue
		}
		if strings.TrimSpace(row[column]) == "" {
			continue
		}
		texts = append(texts, row[column])
	}

	if len(texts) == 0 {
		return nil, ErrNoComments
	}

	return texts, nil
}
