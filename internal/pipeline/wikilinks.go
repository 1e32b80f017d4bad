package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdenrich/internal/slug"
)

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\[\]\n]+)\]\]`)

// WikiLink is the parsed form of a [[Page#Heading|Label]] reference.
type WikiLink struct {
	Page    string
	Heading string
	Label   string
}

// ParseWikiLink splits the inside of a double-bracket link.
func ParseWikiLink(inner string) WikiLink {
	target, label, _ := strings.Cut(inner, "|")
	page, heading, _ := strings.Cut(target, "#")
	return WikiLink{
		Page:    strings.TrimSpace(page),
		Heading: strings.TrimSpace(heading),
		Label:   strings.TrimSpace(label),
	}
}

// Anchor returns the slug of the heading, or of the page when no heading
// is given.
func (l WikiLink) Anchor() string {
	if l.Heading != "" {
		return slug.Make(l.Heading)
	}
	return slug.Make(l.Page)
}

// Text returns the visible label: the custom label, else the page, else
// the heading.
func (l WikiLink) Text() string {
	switch {
	case l.Label != "":
		return l.Label
	case l.Page != "":
		return l.Page
	default:
		return l.Heading
	}
}

// WikiLinks rewrites [[Page]], [[Page#Heading]] and their |Label forms into
// in-page anchors under basePath. Embeds (![[...]]) are left for Embeds.
func WikiLinks(md, basePath string) string {
	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, "[[") {
			return text
		}

		matches := wikiLinkPattern.FindAllStringSubmatchIndex(text, -1)
		var b strings.Builder
		last := 0
		for _, m := range matches {
			if m[0] > 0 && text[m[0]-1] == '!' {
				continue
			}
			link := ParseWikiLink(text[m[2]:m[3]])
			b.WriteString(text[last:m[0]])
			b.WriteString(`<a href="` + basePath + "#" + link.Anchor() + `">` + link.Text() + `</a>`)
			last = m[1]
		}
		b.WriteString(text[last:])
		return b.String()
	})
}
