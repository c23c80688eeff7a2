package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

type csvSource struct {
	reader io.Reader
}

// CSV reads every cell of every row, the header row included.
func CSV(r io.Reader) Source {
	return &csvSource{reader: r}
}

func (s *csvSource) Name() string {
	return "csv"
}

func (s *csvSource) Text(ctx context.Context) (string, error) {
	csvReader := csv.NewReader(s.reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read csv row: %w", err)
		}
		rows = append(rows, row)
	}
	return joinRows(rows), nil
}
