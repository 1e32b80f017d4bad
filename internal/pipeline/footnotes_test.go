package pipeline

import (
	"strings"
	"testing"
)

func TestFootnotes(t *testing.T) {
	t.Parallel()

	input := "Text[^1].\n\n[^1]: The note."
	want := `Text<sup id="ref-1"><a href="#footnote-1">[1]</a></sup>.` + "\n\n" +
		`<div class="footnotes"><h4>Footnotes</h4><ol>` +
		`<li id="footnote-1">The note. <a href="#ref-1" class="footnote-backref">&#8617;</a></li>` +
		`</ol></div>` + "\n"

	if got := Footnotes(input); got != want {
		t.Errorf("Footnotes() =\n%q\nwant\n%q", got, want)
	}
}

func TestFootnotes_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:  "ids sanitizing to the same slug get suffixes",
			input: "One[^a.b] two[^a-b]\n\n[^a.b]: First\n[^a-b]: Second\n",
			contains: []string{
				`<sup id="ref-a-b"><a href="#footnote-a-b">[a-b]</a></sup>`,
				`<sup id="ref-a-b-2"><a href="#footnote-a-b-2">[a-b-2]</a></sup>`,
				`<li id="footnote-a-b">First <a href="#ref-a-b"`,
				`<li id="footnote-a-b-2">Second <a href="#ref-a-b-2"`,
			},
		},
		{
			name:  "repeated references get numbered ids",
			input: "x[^n] y[^n]\n[^n]: Note",
			contains: []string{
				`<sup id="ref-n"><a href="#footnote-n">[n]</a></sup>`,
				`<sup id="ref-n-2"><a href="#footnote-n">[n]</a></sup>`,
			},
		},
		{
			name:     "inline code untouched",
			input:    "Match digits with `[^0-9]` here.",
			contains: []string{"`[^0-9]`"},
			excludes: []string{"<sup"},
		},
		{
			name:     "dangling reference still links",
			input:    "see[^missing]",
			contains: []string{`<sup id="ref-missing"><a href="#footnote-missing">[missing]</a></sup>`},
			excludes: []string{`class="footnotes"`},
		},
		{
			name:     "definitions are removed from the body",
			input:    "Body[^x]\n[^x]: Hidden text\nMore",
			contains: []string{"Body<sup", "\nMore\n\n<div", ">Hidden text <a"},
			excludes: []string{"[^x]:"},
		},
		{
			name:     "unicode ids are sanitized",
			input:    "a[^été]\n[^été]: b",
			contains: []string{`id="ref--t-"`, `<li id="footnote--t-">b`},
		},
		{
			name:     "definition inside code is ignored",
			input:    "```\n[^1]: not a definition\n```\n",
			excludes: []string{"footnotes", "<sup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Footnotes(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Footnotes() missing %q\ngot: %q", want, got)
				}
			}
			for _, exclude := range tt.excludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Footnotes() should not contain %q\ngot: %q", exclude, got)
				}
			}
		})
	}
}

func TestFootnotes_CodeUntouched(t *testing.T) {
	t.Parallel()

	input := "```\nref[^1] here\n[^1]: def\n```"
	if got := Footnotes(input); got != input {
		t.Errorf("Footnotes() = %q, want unchanged", got)
	}
}

func TestSanitizeFootnoteID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"a.b", "a-b"},
		{"snake_case-id", "snake_case-id"},
		{"with space", "with-space"},
		{"ü", "-"},
	}

	for _, tt := range tests {
		if got := sanitizeFootnoteID(tt.input); got != tt.want {
			t.Errorf("sanitizeFootnoteID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
