package google

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	docURLPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ParseDocumentID accepts a bare document id or a Docs / Sheets URL containing /d/<id>.
func ParseDocumentID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("document id is empty")
	}
	if m := docURLPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("cannot find a document id in %q", s)
}

func DocumentURL(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

func SpreadsheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id + "/edit"
}
