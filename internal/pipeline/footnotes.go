package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-mdenrich/internal/slug"
)

var (
	footnoteDefPattern = regexp.MustCompile(`(?m)^\[\^([^\]\n]+)\]:[ \t]+(.+)$\n?`)
	footnoteRefPattern = regexp.MustCompile(`\[\^([^\]\n]+)\]`)
)

type footnote struct {
	id   string
	text string
}

// footnoteTable maps raw ids to collision-free sanitized ids.
type footnoteTable struct {
	ids     *slug.Registry
	byRaw   map[string]string
	entries []footnote
}

func newFootnoteTable() *footnoteTable {
	return &footnoteTable{
		ids:   slug.NewRegistry(),
		byRaw: make(map[string]string),
	}
}

func (t *footnoteTable) define(raw, text string) {
	id := t.ids.Claim(sanitizeFootnoteID(raw))
	if _, ok := t.byRaw[raw]; !ok {
		t.byRaw[raw] = id
	}
	t.entries = append(t.entries, footnote{id: id, text: strings.TrimSpace(text)})
}

func (t *footnoteTable) lookup(raw string) string {
	if id, ok := t.byRaw[raw]; ok {
		return id
	}
	return sanitizeFootnoteID(raw)
}

// sanitizeFootnoteID keeps ASCII letters, digits, '-' and '_' and replaces
// every other rune with '-'.
func sanitizeFootnoteID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Footnotes turns "[^id]" references into superscript links and appends the
// collected "[^id]: text" definitions as an ordered list. Definition lines
// are removed from the body. References without a definition still link.
func Footnotes(md string) string {
	spans := SplitCodeBlocks(md)
	table := newFootnoteTable()

	for i, s := range spans {
		if s.Code {
			continue
		}
		spans[i].Text = replaceSubmatch(footnoteDefPattern, s.Text, func(g []string) string {
			table.define(g[1], g[2])
			return ""
		})
	}

	uses := make(map[string]int)
	for i, s := range spans {
		if s.Code {
			continue
		}
		masked, saved := shieldMarkup(s.Text)
		linked := replaceSubmatch(footnoteRefPattern, masked, func(g []string) string {
			id := table.lookup(g[1])
			uses[id]++
			refID := "ref-" + id
			if n := uses[id]; n > 1 {
				refID += "-" + strconv.Itoa(n)
			}
			return `<sup id="` + refID + `"><a href="#footnote-` + id + `">[` + id + `]</a></sup>`
		})
		spans[i].Text = unshield(linked, saved)
	}

	out := JoinSpans(spans)
	if len(table.entries) == 0 {
		return out
	}
	return strings.TrimRight(out, "\n") + "\n\n" + renderFootnoteList(table.entries) + "\n"
}

func renderFootnoteList(entries []footnote) string {
	var b strings.Builder
	b.WriteString(`<div class="footnotes"><h4>Footnotes</h4><ol>`)
	for _, e := range entries {
		b.WriteString(`<li id="footnote-`)
		b.WriteString(e.id)
		b.WriteString(`">`)
		b.WriteString(e.text)
		b.WriteString(` <a href="#ref-`)
		b.WriteString(e.id)
		b.WriteString(`" class="footnote-backref">&#8617;</a></li>`)
	}
	b.WriteString(`</ol></div>`)
	return b.String()
}
