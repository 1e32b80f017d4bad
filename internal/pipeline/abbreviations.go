package pipeline

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var abbreviationDefPattern = regexp.MustCompile(`(?m)^\*\[([^\]\n]+)\]:[ \t]+(.+)$\n?`)

// Abbreviations collects "*[ABBR]: Full text" definition lines, removes
// them, and wraps every whole-word, case-sensitive occurrence of ABBR in
// <abbr title="Full text">. Longer abbreviations win over their prefixes.
func Abbreviations(md string) string {
	spans := SplitCodeBlocks(md)
	defs := make(map[string]string)

	for i, s := range spans {
		if s.Code {
			continue
		}
		spans[i].Text = replaceSubmatch(abbreviationDefPattern, s.Text, func(g []string) string {
			defs[strings.TrimSpace(g[1])] = strings.TrimSpace(g[2])
			return ""
		})
	}

	md = JoinSpans(spans)
	pattern := abbreviationPattern(defs)
	if pattern == nil {
		return md
	}

	return mapShielded(md, func(text string) string {
		return wrapAbbreviations(text, pattern, defs)
	})
}

// abbreviationPattern builds one alternation with longer names first so a
// single pass picks the longest match.
func abbreviationPattern(defs map[string]string) *regexp.Regexp {
	names := make([]string, 0, len(defs))
	for name := range defs {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

func wrapAbbreviations(text string, pattern *regexp.Regexp, defs map[string]string) string {
	matches := pattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !isWordBoundary(text, m[0], m[1]) {
			continue
		}
		name := text[m[0]:m[1]]
		b.WriteString(text[last:m[0]])
		b.WriteString(`<abbr title="`)
		b.WriteString(html.EscapeString(defs[name]))
		b.WriteString(`">`)
		b.WriteString(name)
		b.WriteString(`</abbr>`)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// isWordBoundary reports whether text[start:end] is not glued to
// surrounding letters, digits or underscores.
func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
