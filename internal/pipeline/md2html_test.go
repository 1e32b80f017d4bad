package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []GoldmarkOption
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "duplicate headings get unique ids",
			input:    "# Intro\n\n## Intro\n\n### Intro",
			contains: []string{`<h1 id="intro">Intro</h1>`, `<h2 id="intro-2">Intro</h2>`, `<h3 id="intro-3">Intro</h3>`},
		},
		{
			name:     "unicode heading slug",
			input:    "## Café Déjà Vu",
			contains: []string{`id="cafe-deja-vu"`},
		},
		{
			name:     "raw html passes through",
			input:    "a <mark>b</mark>\n\n<div class=\"callout\">x</div>",
			contains: []string{"<mark>b</mark>", `<div class="callout">x</div>`},
		},
		{
			name:     "fragment only",
			input:    "text",
			excludes: []string{"<html", "<body", "<!DOCTYPE"},
		},
		{
			name:     "gfm table and strikethrough",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~",
			contains: []string{"<table>", "<del>old</del>"},
		},
		{
			name:     "task list",
			input:    "- [x] done",
			contains: []string{`type="checkbox"`},
		},
		{
			name:     "highlighted code uses classes",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`class="chroma"`},
			excludes: []string{"style="},
		},
		{
			name:     "soft breaks by default",
			input:    "one\ntwo",
			excludes: []string{"<br"},
		},
		{
			name:     "hard wraps option",
			opts:     []GoldmarkOption{WithHardWraps(true)},
			input:    "one\ntwo",
			contains: []string{"one<br />"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.opts...).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.excludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q\ngot: %s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_IDsResetPerCall(t *testing.T) {
	t.Parallel()

	c := NewGoldmarkConverter()
	for i := 0; i < 2; i++ {
		got, err := c.ToHTML(context.Background(), "# Intro")
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		if !strings.Contains(got, `id="intro"`) {
			t.Errorf("call %d: got %s, want id=\"intro\"", i, got)
		}
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	for _, style := range []string{"", "monokai", "no-such-style"} {
		css, err := HighlightCSS(style)
		if err != nil {
			t.Fatalf("HighlightCSS(%q) error = %v", style, err)
		}
		if !strings.Contains(css, ".chroma") {
			t.Errorf("HighlightCSS(%q) missing .chroma rules", style)
		}
	}
}
