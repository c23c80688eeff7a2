package export

import (
	"fmt"
	"io"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName         = "Placements"
	DisplayDateLayout = "January 02, 2006"
	createdAtLayout   = "2006-01-02 15:04"
)

var Header = []string{"URL", "Title", "Source", "Publication Date", "Media Type", "Notes", "Docket URL", "Created At"}

// Rows renders placements as a table with the header as its first row.
func Rows(ps []domain.Placement) [][]string {
	rows := make([][]string, 0, len(ps)+1)
	rows = append(rows, Header)
	for _, p := range ps {
		rows = append(rows, []string{
			p.URL,
			p.Title,
			p.Source,
			FormatDate(p.PublicationDate),
			p.MediaType.String(),
			p.Notes,
			p.DocketURL,
			formatCreatedAt(p.CreatedAt),
		})
	}
	return rows
}

// FormatDate renders a publication date for display, empty when unknown.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DisplayDateLayout)
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(createdAtLayout)
}

// WriteXLSX writes placements as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, ps []domain.Placement) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range Rows(ps) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell for row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
