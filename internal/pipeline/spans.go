package pipeline

import (
	"regexp"
	"strings"
)

// Span is a contiguous run of a document classified by SplitCodeBlocks.
type Span struct {
	Text string
	Code bool
}

// Shield placeholders use Unicode Private Use Area characters so that no
// stage pattern can match them. The index of the shielded text is written
// in base 16 using the digit runes U+E020..U+E02F.
const (
	shieldStart     = '\uE010'
	shieldEnd       = '\uE011'
	shieldDigitBase = '\uE020'
)

// Precompiled regex patterns shared by the stages.
var (
	// Fenced code: triple backticks up to the next triple backticks.
	codeFencePattern = regexp.MustCompile("(?s)```.*?```")

	// HTML tags (including comments) and inline code spans.
	markupPattern = regexp.MustCompile("<!--(?s:.*?)-->|</?[a-zA-Z][^<>]*>|``[^\n]*?``|`[^`\n]+`")

	// Inline code spans only.
	inlineCodePattern = regexp.MustCompile("``[^\n]*?``|`[^`\n]+`")

	placeholderPattern = regexp.MustCompile(`\x{E010}([\x{E020}-\x{E02F}]+)\x{E011}`)
)

// SplitCodeBlocks segments md into alternating prose and code spans.
// Every gap around a fence becomes a prose span, even when empty, so
// concatenating the span texts always reproduces md.
func SplitCodeBlocks(md string) []Span {
	matches := codeFencePattern.FindAllStringIndex(md, -1)
	spans := make([]Span, 0, 2*len(matches)+1)

	last := 0
	for _, m := range matches {
		spans = append(spans,
			Span{Text: md[last:m[0]]},
			Span{Text: md[m[0]:m[1]], Code: true},
		)
		last = m[1]
	}
	return append(spans, Span{Text: md[last:]})
}

// JoinSpans concatenates span texts in order.
func JoinSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// mapProse applies fn to every prose span of md and leaves code untouched.
func mapProse(md string, fn func(string) string) string {
	spans := SplitCodeBlocks(md)
	if len(spans) == 1 {
		return fn(md)
	}

	var b strings.Builder
	b.Grow(len(md))
	for _, s := range spans {
		if s.Code {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(fn(s.Text))
	}
	return b.String()
}

// mapShielded is mapProse with HTML tags and inline code hidden from fn.
func mapShielded(md string, fn func(string) string) string {
	return mapProse(md, func(prose string) string {
		masked, saved := shieldMarkup(prose)
		return unshield(fn(masked), saved)
	})
}

// shieldMarkup swaps HTML tags and inline code spans for placeholders and
// returns the masked text along with the original snippets.
func shieldMarkup(s string) (string, []string) {
	return shieldMatches(markupPattern, s)
}

// shieldMatches swaps every match of re for a placeholder.
func shieldMatches(re *regexp.Regexp, s string) (string, []string) {
	var saved []string
	masked := re.ReplaceAllStringFunc(s, func(m string) string {
		saved = append(saved, m)
		return placeholder(len(saved) - 1)
	})
	return masked, saved
}

// unshield restores the snippets hidden by shieldMarkup.
func unshield(s string, saved []string) string {
	if len(saved) == 0 {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		idx := 0
		for _, r := range strings.TrimSuffix(strings.TrimPrefix(m, string(shieldStart)), string(shieldEnd)) {
			idx = idx*16 + int(r-shieldDigitBase)
		}
		if idx < len(saved) {
			return saved[idx]
		}
		return m
	})
}

func placeholder(idx int) string {
	var digits []rune
	for {
		digits = append([]rune{shieldDigitBase + rune(idx%16)}, digits...)
		idx /= 16
		if idx == 0 {
			break
		}
	}
	return string(shieldStart) + string(digits) + string(shieldEnd)
}

// replaceSubmatch replaces every match of re in s with the result of fn,
// which receives the submatch strings (index 0 is the whole match).
func replaceSubmatch(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	idx := re.FindAllStringSubmatchIndex(s, -1)
	if idx == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range idx {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
