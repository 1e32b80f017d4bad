package pipeline

import (
	"net/url"
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}][\p{L}\p{N}_-]*)`)

// Hashtags links #word tokens that start a line or follow whitespace. With
// an empty baseURL the tag becomes an inert span. All-digit tokens are left
// for IssueLinks.
func Hashtags(md, baseURL string) string {
	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, "#") {
			return text
		}
		return replaceSubmatch(hashtagPattern, text, func(g []string) string {
			lead, word := g[1], g[2]
			trimmed := strings.TrimRight(word, "-")
			if isDigits(trimmed) {
				return g[0]
			}
			return lead + renderTag(trimmed, baseURL) + word[len(trimmed):]
		})
	})
}

func renderTag(tag, baseURL string) string {
	if baseURL == "" {
		return `<span class="tag">#` + tag + `</span>`
	}
	return `<a href="` + baseURL + url.PathEscape(tag) + `" class="tag">#` + tag + `</a>`
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
