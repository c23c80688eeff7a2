package google

import (
	"strings"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/sheets/v4"
)

// DocumentText concatenates the text runs of every body paragraph.
func DocumentText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}
	var b strings.Builder
	for _, el := range doc.Body.Content {
		if el == nil || el.Paragraph == nil {
			continue
		}
		for _, pe := range el.Paragraph.Elements {
			if pe != nil && pe.TextRun != nil {
				b.WriteString(pe.TextRun.Content)
			}
		}
	}
	return b.String()
}

// SpreadsheetText flattens every sheet: formatted cell values joined with a space, one line per row.
func SpreadsheetText(ss *sheets.Spreadsheet) string {
	if ss == nil {
		return ""
	}
	var lines []string
	for _, sh := range ss.Sheets {
		if sh == nil {
			continue
		}
		for _, grid := range sh.Data {
			if grid == nil {
				continue
			}
			for _, row := range grid.RowData {
				if row == nil {
					continue
				}
				cells := make([]string, 0, len(row.Values))
				for _, cell := range row.Values {
					if cell != nil && cell.FormattedValue != "" {
						cells = append(cells, cell.FormattedValue)
					}
				}
				lines = append(lines, strings.Join(cells, " "))
			}
		}
	}
	return strings.Join(lines, "\n")
}
