package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	reader io.Reader
}

// XLSX reads every cell of every sheet of a workbook.
func XLSX(r io.Reader) Source {
	return &xlsxSource{reader: r}
}

func (s *xlsxSource) Name() string {
	return "xlsx"
}

func (s *xlsxSource) Text(ctx context.Context) (string, error) {
	f, err := excelize.OpenReader(s.reader)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	var all [][]string
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		all = append(all, rows...)
	}
	return joinRows(all), nil
}
