// Package sanitize cleans owner-supplied course text before it is stored.
package sanitize

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag; course fields are plain text.
var strict = bluemonday.StrictPolicy()

// Text strips markup from s and returns trimmed plain text.
// Entities are decoded again so "R&D" survives unchanged.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Texts applies Text to every element and drops the ones left empty.
func Texts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := Text(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// URL returns s when it is an absolute http(s) URL, "" otherwise.
func URL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return s
	default:
		return ""
	}
}
