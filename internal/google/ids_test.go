package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "1AbC-d_E2", "1AbC-d_E2"},
		{"docs url", "https://docs.google.com/document/d/1AbC-d_E2/edit?usp=sharing", "1AbC-d_E2"},
		{"sheets url", "https://docs.google.com/spreadsheets/d/9zY_x-8/edit#gid=0", "9zY_x-8"},
		{"surrounding whitespace", "  1AbC  ", "1AbC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocumentID(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDocumentID_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not an id", "https://example.com/page"} {
		_, err := ParseDocumentID(input)
		assert.Error(t, err, input)
	}
}

func TestDocumentURLs(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/document/d/abc/edit", DocumentURL("abc"))
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc/edit", SpreadsheetURL("abc"))
}
