package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	idAttr        = regexp.MustCompile(`^[\p{L}\p{N}_:.-]+$`)
	classAttr     = regexp.MustCompile(`^[\w\s-]+$`)
	dirAttr       = regexp.MustCompile(`^(?i:ltr|rtl|auto)$`)
	alignAttr     = regexp.MustCompile(`^(?i:left|right|center)$`)
	checkboxAttr  = regexp.MustCompile(`^checkbox$`)
	noteRoleAttr  = regexp.MustCompile(`^note$`)
	titleAttr     = regexp.MustCompile(`^[^<>]*$`)
	dimensionAttr = bluemonday.NumberOrPercent
)

// Sanitizer filters rendered HTML through an allow-list that accepts every
// element the enrichment stages emit.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer with the enrichment allow-list.
// Links and media sources are limited to https and relative URLs.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: newPolicy()}
}

// Sanitize returns html with disallowed elements, attributes and URLs
// removed. Safe for concurrent use.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("https")

	p.AllowAttrs("id").Matching(idAttr).Globally()
	p.AllowAttrs("class").Matching(classAttr).Globally()
	p.AllowAttrs("dir").Matching(dirAttr).Globally()
	p.AllowAttrs("title").Matching(titleAttr).Globally()

	p.AllowElements(
		"p", "br", "hr", "blockquote", "pre", "code",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"em", "strong", "b", "i", "u", "s", "del", "ins", "small",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption",
		"figure", "figcaption", "nav",
		"div", "span", "details", "summary", "mark", "kbd",
		"dl", "dt", "dd", "abbr", "sub", "sup", "canvas",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("a")

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("width", "height").Matching(dimensionAttr).OnElements("img", "iframe", "video", "canvas")

	p.AllowAttrs("src", "allowfullscreen").OnElements("iframe")
	p.AllowAttrs("src", "controls", "autoplay", "loop", "muted", "playsinline").OnElements("video")
	p.AllowAttrs("src", "controls", "autoplay", "loop", "muted").OnElements("audio")

	p.AllowAttrs("role").Matching(noteRoleAttr).OnElements("div")
	p.AllowAttrs("align").Matching(alignAttr).OnElements("th", "td")
	p.AllowAttrs("open").OnElements("details")
	p.AllowAttrs("type").Matching(checkboxAttr).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	return p
}
