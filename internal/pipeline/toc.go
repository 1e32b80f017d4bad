package pipeline

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// TOCData holds table of contents rendering options.
type TOCData struct {
	Title    string
	Numbered bool // prefix entries with hierarchical numbers (1., 1.1., ...)
}

// numberingState tracks hierarchical numbering for TOC entries.
// The shallowest first heading becomes depth 1 and skipped levels collapse
// so that an h1 followed by an h3 nests only one level deep.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

// next returns the number string and effective depth for a heading level.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = max(1, level-n.minLevelSeen+1)
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, effectiveDepth)
	for i := range parts {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// RenderTOC renders headings as a nav block of indented links. It returns
// "" when there are no headings.
func RenderTOC(headings []Heading, data TOCData) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if data.Title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(data.Title))
		buf.WriteString(`</h2>`)
	}
	buf.WriteString(`<ul class="toc-list">`)

	numbering := &numberingState{}
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		fmt.Fprintf(&buf, `<li class="toc-item toc-depth-%d"><a href="#%s">`, depth, html.EscapeString(h.ID))
		if data.Numbered {
			buf.WriteString(num)
			buf.WriteString(" ")
		}
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></li>`)
	}

	buf.WriteString(`</ul></nav>`)
	return buf.String()
}
