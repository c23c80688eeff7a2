package source

import (
	"context"
	"fmt"
)

type DocumentReader interface {
	DocumentText(ctx context.Context, documentID string) (string, error)
}

type SpreadsheetReader interface {
	SpreadsheetText(ctx context.Context, spreadsheetID string) (string, error)
}

type googleDoc struct {
	reader DocumentReader
	id     string
}

func GoogleDoc(r DocumentReader, documentID string) Source {
	return &googleDoc{reader: r, id: documentID}
}

func (s *googleDoc) Name() string {
	return "gdoc:" + s.id
}

func (s *googleDoc) Text(ctx context.Context) (string, error) {
	text, err := s.reader.DocumentText(ctx, s.id)
	if err != nil {
		return "", fmt.Errorf("failed to read google doc %s: %w", s.id, err)
	}
	return text, nil
}

type googleSheet struct {
	reader SpreadsheetReader
	id     string
}

func GoogleSheet(r SpreadsheetReader, spreadsheetID string) Source {
	return &googleSheet{reader: r, id: spreadsheetID}
}

func (s *googleSheet) Name() string {
	return "gsheet:" + s.id
}

func (s *googleSheet) Text(ctx context.Context) (string, error) {
	text, err := s.reader.SpreadsheetText(ctx, s.id)
	if err != nil {
		return "", fmt.Errorf("failed to read google sheet %s: %w", s.id, err)
	}
	return text, nil
}
