package pipeline

import (
	"regexp"
	"strings"
)

var highlightPattern = regexp.MustCompile(`==([^=\n]+)==`)

// InlineExtras converts ==text== to <mark>, ~text~ to <sub> and ^text^ to
// <sup>. Doubled markers (~~, ^^) are never treated as single ones, which
// keeps GFM strikethrough intact.
func InlineExtras(md string) string {
	return mapShielded(md, func(text string) string {
		text = highlightPattern.ReplaceAllString(text, "<mark>$1</mark>")
		text = wrapSingleMarker(text, '~', "sub")
		return wrapSingleMarker(text, '^', "sup")
	})
}

// wrapSingleMarker wraps runs delimited by a single marker byte in tag.
// Neither delimiter may touch another marker, and the content may not
// contain the marker or a newline, nor start or end with a space.
func wrapSingleMarker(s string, marker byte, tag string) string {
	if strings.IndexByte(s, marker) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if end, ok := singleMarkerSpan(s, i, marker); ok {
			b.WriteString("<" + tag + ">")
			b.WriteString(s[i+1 : end])
			b.WriteString("</" + tag + ">")
			i = end + 1
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// singleMarkerSpan reports the index of the closing marker for an opener at i.
func singleMarkerSpan(s string, i int, marker byte) (int, bool) {
	if s[i] != marker || (i > 0 && s[i-1] == marker) {
		return 0, false
	}
	if i+1 >= len(s) || s[i+1] == marker || isBlank(s[i+1]) {
		return 0, false
	}

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return 0, false
		case marker:
			if isBlank(s[j-1]) || (j+1 < len(s) && s[j+1] == marker) {
				return 0, false
			}
			return j, true
		}
	}
	return 0, false
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
