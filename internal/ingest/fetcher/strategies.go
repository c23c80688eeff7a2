package fetcher

import (
	"regexp"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/ingest/dates"
	"github.com/PuerkitoBio/goquery"
)

type TitleStrategy func(doc *goquery.Document) (string, bool)

type DateStrategy func(doc *goquery.Document) (time.Time, bool)

// TitleStrategies are tried in order until one yields a non-empty title.
var TitleStrategies = []TitleStrategy{
	metaTitle,
	titleTag,
	firstHeading,
}

// DateStrategies are tried in order until one yields a date.
var DateStrategies = []DateStrategy{
	metaPublishedDate,
	rawTextDate(regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)),
	rawTextDate(regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)),
	rawTextDate(regexp.MustCompile(`[A-Z][a-z]+ \d{1,2}, \d{4}`)),
}

func metaTitle(doc *goquery.Document) (string, bool) {
	for _, sel := range []string{`meta[property="og:title"]`, `meta[name="title"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if t := collapseSpace(content); t != "" {
				return t, true
			}
		}
	}
	return "", false
}

func titleTag(doc *goquery.Document) (string, bool) {
	t := collapseSpace(doc.Find("title").First().Text())
	return t, t != ""
}

func firstHeading(doc *goquery.Document) (string, bool) {
	t := collapseSpace(doc.Find("h1, h2").First().Text())
	return t, t != ""
}

var (
	publishedProperties = map[string]bool{
		"article:published_time": true,
		"og:published_time":      true,
	}
	publishedNames = map[string]bool{
		"pubdate":        true,
		"publishdate":    true,
		"date":           true,
		"DC.date.issued": true,
	}
)

// metaPublishedDate walks every meta tag in document order. A tag whose content
// does not parse is skipped and the walk continues.
func metaPublishedDate(doc *goquery.Document) (time.Time, bool) {
	var (
		found time.Time
		ok    bool
	)
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		prop, _ := s.Attr("property")
		name, _ := s.Attr("name")
		if !publishedProperties[prop] && !publishedNames[name] {
			return true
		}
		content, _ := s.Attr("content")
		if content == "" {
			return true
		}
		found, ok = dates.Parse(content)
		return !ok
	})
	return found, ok
}

// rawTextDate scans the page markup for the first match of re and parses it.
func rawTextDate(re *regexp.Regexp) DateStrategy {
	return func(doc *goquery.Document) (time.Time, bool) {
		html, err := doc.Html()
		if err != nil {
			return time.Time{}, false
		}
		m := re.FindString(html)
		if m == "" {
			return time.Time{}, false
		}
		return dates.Parse(m)
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
