package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidInput marks malformed request data. Handlers map it to a
// 400 response; wrapped messages carry the specific reason.
var ErrInvalidInput = errors.New("invalid input")

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// sanitizeUTF8 removes invalid UTF-8 sequences from string
// This prevents PostgreSQL encoding errors when saving text
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	// Remove invalid UTF-8 sequences
	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8 sequence, skip this byte
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
