// Package source turns the supported inputs into plain text for link extraction.
package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Source yields the text that links are extracted from.
type Source interface {
	Name() string
	Text(ctx context.Context) (string, error)
}

type direct struct {
	text string
}

// Direct wraps pasted text.
func Direct(text string) Source {
	return direct{text: text}
}

func (d direct) Name() string {
	return "direct"
}

func (d direct) Text(context.Context) (string, error) {
	return d.text, nil
}

// FromUpload picks a source for an uploaded file by its extension.
// Anything that is not .csv or .xlsx is read as plain text.
func FromUpload(filename string, r io.Reader) (Source, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return CSV(r), nil
	case ".xlsx", ".xlsm":
		return XLSX(r), nil
	case ".txt", ".md", "":
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		return Direct(string(b)), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q: expected .csv, .xlsx or .txt", filepath.Ext(filename))
	}
}

// joinRows flattens a table: cells joined with a space, rows with a newline.
func joinRows(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, " "))
	}
	return b.String()
}
