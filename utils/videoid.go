package utils

import (
	"regexp"
	"strings"
)

// Video identifiers are exactly 11 characters of this alphabet. Input may
// be a bare id or any of the common YouTube URL shapes.
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Recognized URL shapes: watch?v=, youtu.be/, /embed/ and /shorts/.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
}

// IsVideoID reports whether s is a literal 11-character video id.
func IsVideoID(s string) bool {
	return videoIDRe.MatchString(s)
}

// ExtractVideoID pulls a video id out of free text: a literal id is
// returned unchanged, otherwise the first URL pattern that matches wins.
// Returns "" when nothing matches.
func ExtractVideoID(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if IsVideoID(text) {
		return text
	}

	for _, p := range urlPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractVideoIDs tokenizes free text on whitespace and commas and
// extracts an id per token. Tokens that yield nothing are dropped
// silently; duplicates keep their first position.
func ExtractVideoIDs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	seen := make(map[string]struct{})
	var ids []string
	for _, field := range fields {
		id := ExtractVideoID(field)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
