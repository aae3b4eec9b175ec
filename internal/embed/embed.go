// Package embed turns user-supplied YouTube links into privacy-friendly embed URLs.
//
// Resolution is pure string parsing; no request is ever made.
package embed

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/learntube/internal/sanitize"
)

const (
	// IDLength is the length of a YouTube video identifier.
	IDLength = 11

	// PrivacyHost serves embeds without tracking cookies.
	PrivacyHost = "www.youtube-nocookie.com"
)

var (
	// Union of every recognised shape; the greedy prefix means the last marker wins.
	fallbackPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=|/shorts/)([^#&?]*).*`)
	idPattern       = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// URL returns the canonical embed URL for a video ID.
func URL(id string) string {
	return fmt.Sprintf("https://%s/embed/%s?rel=0", PrivacyHost, id)
}

// Resolve maps raw to an embeddable URL, or "" when no video can be recognised.
// Absolute http(s) links that already point at an embed endpoint are
// returned unchanged; other schemes never are.
func Resolve(raw string) (embedURL string) {
	defer func() {
		if recover() != nil {
			embedURL = ""
		}
	}()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// only web links are handed back verbatim, anything else is rebuilt from its id
	if isEmbedURL(raw) {
		if link := sanitize.URL(raw); link != "" {
			return link
		}
	}
	id, ok := VideoID(raw)
	if !ok {
		return ""
	}
	return URL(id)
}

// VideoID extracts the 11-character identifier from raw.
func VideoID(raw string) (string, bool) {
	id := targetedID(raw)
	if len(id) != IDLength {
		if m := fallbackPattern.FindStringSubmatch(raw); m != nil {
			id = m[2]
		}
	}
	if !idPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

func isEmbedURL(raw string) bool {
	return strings.Contains(raw, "youtube.com/embed/") ||
		strings.Contains(raw, "youtube-nocookie.com/embed/")
}

// targetedID tries the common link shapes in order:
// ?v=ID, youtu.be/ID, /shorts/ID.
func targetedID(raw string) string {
	if _, rest, ok := strings.Cut(raw, "v="); ok {
		rest, _, _ = strings.Cut(rest, "v=")
		id, _, _ := strings.Cut(rest, "&")
		return id
	}
	if _, rest, ok := strings.Cut(raw, "youtu.be/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		return id
	}
	if _, rest, ok := strings.Cut(raw, "/shorts/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		return id
	}
	return ""
}
