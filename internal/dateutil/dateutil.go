// Package dateutil reads frontmatter dates and prints them with
// moment-style format strings such as "MMMM D, YYYY".
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for date operations.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// MaxDateFormatLength bounds user-supplied format strings.
const MaxDateFormatLength = 50

// DefaultDateFormat is used by Format when no format is given.
const DefaultDateFormat = "YYYY-MM-DD"

// DatePresets are named formats accepted by Format, matched case-insensitively.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// layoutTokens translate format tokens to Go reference-time fragments.
// Longer tokens come first so "MMMM" is never read as "MM" twice.
var layoutTokens = [...][2]string{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// ParseDateFormat translates a format string to a Go time layout.
// Text inside [brackets] is copied literally, as is any character that
// starts no token.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	for rest := format; rest != ""; {
		if literal, ok := strings.CutPrefix(rest, "["); ok {
			text, after, closed := strings.Cut(literal, "]")
			if !closed {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(text)
			rest = after
			continue
		}

		n, fragment := matchToken(rest)
		if n == 0 {
			n, fragment = 1, rest[:1]
		}
		layout.WriteString(fragment)
		rest = rest[n:]
	}
	return layout.String(), nil
}

// matchToken returns the length and layout of the token prefixing s, or 0.
func matchToken(s string) (int, string) {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t[0]) {
			return len(t[0]), t[1]
		}
	}
	return 0, ""
}

// dateLayouts are the frontmatter date forms ParseDate accepts, in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate reads a frontmatter date value, ignoring surrounding space.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// Format prints t with a format string or a DatePresets name. An empty
// format means DefaultDateFormat.
func Format(t time.Time, format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
