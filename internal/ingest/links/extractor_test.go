package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_NoURLs(t *testing.T) {
	inputs := []string{
		"",
		"plain prose with no links at all.",
		"www.example.com without a scheme",
		"ftp://files.example.com/archive.zip",
		"http:// nothing here",
	}

	for _, in := range inputs {
		assert.Empty(t, Extract(in), "input %q", in)
	}
}

func TestExtract_DedupAndSentencePeriod(t *testing.T) {
	// Act
	got := Extract("See https://example.com/a.html and also https://example.com/a.html.")

	// Assert
	assert.Equal(t, []string{"https://example.com/a.html"}, got)
}

func TestExtract_StripsCommaAndBang_KeepsQueryAndFragment(t *testing.T) {
	got := Extract("Visit https://example.com/page, or https://other.org/x?y=1#z!")

	assert.ElementsMatch(t, []string{
		"https://example.com/page",
		"https://other.org/x?y=1#z",
	}, got)
}

func TestExtract_KeepsFileLikeSuffixes(t *testing.T) {
	got := Extract("Coverage: https://timesofindia.indiatimes.com/city/story/123.cms and https://example.com/report.pdf.")

	assert.Equal(t, []string{
		"https://timesofindia.indiatimes.com/city/story/123.cms",
		"https://example.com/report.pdf",
	}, got)
}

func TestExtract_WhitespaceSeparated(t *testing.T) {
	got := Extract("https://a.example.com/one https://b.example.com/two\nhttps://c.example.com/three")

	assert.Equal(t, []string{
		"https://a.example.com/one",
		"https://b.example.com/two",
		"https://c.example.com/three",
	}, got)
}

func TestExtract_QuotesAndParentheses(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "closing quote before whitespace",
			in:   `He said "read https://example.com/story" yesterday`,
			want: []string{"https://example.com/story"},
		},
		{
			name: "single quoted at end of string",
			in:   `link: 'https://example.com/story'`,
			want: []string{"https://example.com/story"},
		},
		{
			name: "wrapped in parentheses",
			in:   "(see https://example.com/story)",
			want: []string{"https://example.com/story"},
		},
		{
			name: "balanced parentheses are part of the path",
			in:   "https://en.wikipedia.org/wiki/Go_(programming_language).",
			want: []string{"https://en.wikipedia.org/wiki/Go_(programming_language)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in))
		})
	}
}

func TestExtract_PortPercentEncodingAndNestedURL(t *testing.T) {
	got := Extract("local http://localhost:8080/path%20one?next=https://x.org/y;")

	assert.Equal(t, []string{"http://localhost:8080/path%20one?next=https://x.org/y"}, got)
}

func TestExtract_MarkupAroundURL(t *testing.T) {
	got := Extract(`<a href="https://example.com/a?b=c">link</a>`)

	assert.Equal(t, []string{"https://example.com/a?b=c"}, got)
}

func TestExtract_HostOnlyPunctuationIsDropped(t *testing.T) {
	assert.Empty(t, Extract("broken http://... link"))
}

func TestExtract_HostsAreASCII(t *testing.T) {
	// Internationalized hosts are only found in their punycode form.
	assert.Empty(t, Extract("Read http://例え.jp/path today"))
	assert.Equal(t, []string{"http://xn--r8jz45g.jp/path"}, Extract("Read http://xn--r8jz45g.jp/path today"))
}
