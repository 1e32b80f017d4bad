// Package slug derives URL-safe anchor identifiers from heading text.
//
// Make is a pure function. Registry wraps it with per-render-pass collision
// handling so that repeated headings receive distinct ids:
//
//	r := slug.NewRegistry()
//	r.Unique("Intro") // "intro"
//	r.Unique("Intro") // "intro-2"
//	r.Unique("Intro") // "intro-3"
//
// A Registry is not safe for concurrent use. Create one per document.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Default is returned when the heading text yields an empty slug.
const Default = "section"

// Make converts text into an anchor identifier.
// The text is NFKD-decomposed, combining diacritics (U+0300-U+036F) are
// dropped, letters are lowercased and anything other than letters, numbers,
// whitespace and hyphens is removed. Whitespace runs become a single hyphen.
func Make(text string) string {
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 0x0300 && r <= 0x036F:
			continue
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '-':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	if len(fields) == 0 {
		return Default
	}
	return strings.Join(fields, "-")
}

// Registry hands out unique slugs within one render pass.
type Registry struct {
	counts map[string]int
	issued map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		counts: make(map[string]int),
		issued: make(map[string]bool),
	}
}

// Unique returns the slug for text, suffixed with -N on the Nth use of the
// same base. Suffixed candidates that were already issued are skipped.
func (r *Registry) Unique(text string) string {
	return r.Claim(Make(text))
}

// Claim registers an already-computed base slug and returns the unique id.
func (r *Registry) Claim(base string) string {
	if base == "" {
		base = Default
	}

	n := r.counts[base] + 1
	candidate := base
	if n > 1 {
		candidate = base + "-" + strconv.Itoa(n)
	}
	for r.issued[candidate] {
		n++
		candidate = base + "-" + strconv.Itoa(n)
	}

	r.counts[base] = n
	r.issued[candidate] = true
	return candidate
}

// Reserve marks id as taken without counting it as a use of any base.
// Used for ids written explicitly by authors.
func (r *Registry) Reserve(id string) {
	r.issued[id] = true
}

// Len returns the number of ids issued or reserved so far.
func (r *Registry) Len() int {
	return len(r.issued)
}
