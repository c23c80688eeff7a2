// Package links finds absolute http(s) URLs in free text.
package links

import (
	"net/url"
	"regexp"
	"strings"
)

// Character classes are ASCII only. IDN hosts must appear in punycode form.
const (
	pctEncoded = `%[0-9A-Fa-f]{2}`
	unreserved = `A-Za-z0-9\-._~`
	subDelims  = `!$&'()*+,;=`
)

var urlPattern = regexp.MustCompile(
	`https?://` +
		`(?:[` + unreserved + `]|` + pctEncoded + `)+` + // host
		`(?::[0-9]+)?` + // port
		`(?:/(?:[` + unreserved + subDelims + `:@]|` + pctEncoded + `)*)*` + // path
		`(?:\?(?:[` + unreserved + subDelims + `:@/?]|` + pctEncoded + `)*)?` + // query
		`(?:#(?:[` + unreserved + subDelims + `:@/?]|` + pctEncoded + `)*)?`, // fragment
)

// trailingPunct is clause punctuation that is almost never the last character of a URL.
const trailingPunct = `.,;:!?'"`

// Extract returns the distinct URLs found in text in order of first appearance.
// Trailing punctuation is stripped from each match before deduplication.
func Extract(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		u := trimTrailing(m)
		if !hasHost(u) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// trimTrailing strips punctuation and unbalanced closing parentheses from the end of a match.
func trimTrailing(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		switch {
		case strings.IndexByte(trailingPunct, last) >= 0:
			s = s[:len(s)-1]
		case last == ')' && strings.Count(s, ")") > strings.Count(s, "("):
			s = s[:len(s)-1]
		default:
			return s
		}
	}
	return s
}

func hasHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.Trim(u.Hostname(), ".") != ""
}
