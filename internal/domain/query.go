package domain

import "strings"

// Query represents a parsed search input.
type Query struct {
	Raw    string   // Original input, trimmed
	Tokens []string // Lowercased whitespace-separated tokens
}

// ParseQuery splits input on any run of whitespace into lowercase tokens.
// Examples:
//   - "react  hooks" -> ["react", "hooks"]
//   - "   " -> no tokens (matches everything)
func ParseQuery(input string) Query {
	raw := strings.TrimSpace(input)
	return Query{
		Raw:    raw,
		Tokens: strings.Fields(strings.ToLower(raw)),
	}
}

// Empty reports whether the query has no tokens.
func (q Query) Empty() bool {
	return len(q.Tokens) == 0
}

// Matches reports whether every token is a substring of the title,
// channel name, description or one of the skills (case-insensitive).
func (q Query) Matches(c Course) bool {
	if q.Empty() {
		return true
	}

	fields := make([]string, 0, 3+len(c.Skills))
	fields = append(fields,
		strings.ToLower(c.Title),
		strings.ToLower(c.ChannelName),
		strings.ToLower(c.Description),
	)
	for _, s := range c.Skills {
		fields = append(fields, strings.ToLower(s))
	}

	for _, token := range q.Tokens {
		if !anyContains(fields, token) {
			return false
		}
	}
	return true
}

func anyContains(fields []string, token string) bool {
	for _, f := range fields {
		if strings.Contains(f, token) {
			return true
		}
	}
	return false
}
