package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// DefaultSpoilerClass is used when no spoiler class is configured.
const DefaultSpoilerClass = "spoiler"

// A spoiler may span lines but never a blank line.
var spoilerPattern = regexp.MustCompile(`>!((?:[^\n]|\n[^\n])*?\n?)!<`)

// Spoilers wraps >!text!< in a span carrying className so a stylesheet can
// hide it until the reader interacts with it.
func Spoilers(md, className string) string {
	if className == "" {
		className = DefaultSpoilerClass
	}
	open := `<span class="` + html.EscapeString(className) + `">`

	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, ">!") {
			return text
		}
		return replaceSubmatch(spoilerPattern, text, func(g []string) string {
			return open + strings.TrimSpace(g[1]) + "</span>"
		})
	})
}
