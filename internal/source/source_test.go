package source

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDirect(t *testing.T) {
	text, err := Direct("see https://example.com").Text(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "see https://example.com", text)
}

func TestCSV_FlattensAllCells(t *testing.T) {
	// Arrange
	input := "name,link\n" +
		"Launch,https://example.com/a\n" +
		"\"Quoted, cell\",https://example.com/b,extra\n"

	// Act
	text, err := CSV(strings.NewReader(input)).Text(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t,
		"name link\nLaunch https://example.com/a\nQuoted, cell https://example.com/b extra",
		text)
}

func TestXLSX_ReadsEverySheet(t *testing.T) {
	// Arrange
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "https://example.com/one"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "note"))
	_, err := f.NewSheet("More")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("More", "A1", "https://example.com/two"))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	// Act
	text, err := XLSX(&buf).Text(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Contains(t, text, "https://example.com/one")
	assert.Contains(t, text, "note")
	assert.Contains(t, text, "https://example.com/two")
}

func TestXLSX_InvalidWorkbook(t *testing.T) {
	_, err := XLSX(strings.NewReader("not a zip")).Text(context.Background())

	assert.Error(t, err)
}

func TestFromUpload(t *testing.T) {
	tests := []struct {
		filename string
		wantName string
		wantErr  bool
	}{
		{"links.csv", "csv", false},
		{"Links.XLSX", "xlsx", false},
		{"notes.txt", "direct", false},
		{"deck.pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			src, err := FromUpload(tt.filename, strings.NewReader("x"))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, src.Name())
		})
	}
}

type fakeGoogle struct {
	text string
	err  error
}

func (f fakeGoogle) DocumentText(context.Context, string) (string, error)    { return f.text, f.err }
func (f fakeGoogle) SpreadsheetText(context.Context, string) (string, error) { return f.text, f.err }

func TestGoogleSources(t *testing.T) {
	ok := fakeGoogle{text: "https://example.com"}
	failing := fakeGoogle{err: errors.New("forbidden")}

	text, err := GoogleDoc(ok, "doc-1").Text(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", text)

	_, err = GoogleSheet(failing, "sheet-1").Text(context.Background())
	assert.ErrorContains(t, err, "sheet-1")
	assert.Equal(t, "gdoc:doc-1", GoogleDoc(ok, "doc-1").Name())
}
