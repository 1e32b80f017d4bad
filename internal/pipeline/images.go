package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// sizedImagePattern matches ![alt](url =W), =Wx, =WxH and =Wx*. The space
// before "=" may be omitted when the url has no query string.
var sizedImagePattern = regexp.MustCompile(`!\[([^\]\n]*)\]\((?:([^)\s]+)\s+|([^)\s?=]+))=(\d+)(?:x(\d+|\*)?)?\)`)

// SizedImages rewrites images with a trailing size suffix into <img> tags
// with explicit dimensions. A "*" or missing height keeps the aspect ratio.
func SizedImages(md string) string {
	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, "![") {
			return text
		}
		return replaceSubmatch(sizedImagePattern, text, func(g []string) string {
			alt, src, width, height := g[1], g[2]+g[3], g[4], g[5]

			var b strings.Builder
			b.WriteString(`<img src="`)
			b.WriteString(html.EscapeString(src))
			b.WriteString(`" width="`)
			b.WriteString(width)
			b.WriteString(`"`)
			if height != "" && height != "*" {
				b.WriteString(` height="`)
				b.WriteString(height)
				b.WriteString(`"`)
			}
			b.WriteString(` alt="`)
			b.WriteString(html.EscapeString(alt))
			b.WriteString(`" />`)
			return b.String()
		})
	})
}
