//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// enrichedDoc repeats a section that triggers most stages.
func enrichedDoc(sections int) string {
	var sb strings.Builder
	sb.WriteString("*[HTML]: HyperText Markup Language\n\n")
	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("> [!TIP] Remember\n> HTML is ==easy== :rocket:\n\n")
		fmt.Fprintf(&sb, "See #%d and @alice, tagged #go. H~2~O and x^2^.[^n%d]\n\n", i+1, i)
		fmt.Fprintf(&sb, "[^n%d]: Footnote %d\n\n", i, i)
		sb.WriteString("Term\n: Definition\n\n")
		sb.WriteString("[[Page#Heading|Label]] ![[clip.mp4|640]] ![alt](img.png =100x50)\n\n")
		sb.WriteString("```go\n// :rocket: #1 @bob\nfmt.Println(\"hi\")\n```\n\n")
	}
	return sb.String()
}

func BenchmarkCompose(b *testing.B) {
	opts := DefaultOptions()
	opts.GitHubRepo = "owner/repo"
	opts.TagsBaseURL = "/tags/"

	for _, n := range []int{1, 10, 100} {
		doc := enrichedDoc(n)
		b.Run(fmt.Sprintf("sections_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				Compose(doc, opts)
			}
		})
	}
}

func BenchmarkSplitCodeBlocks(b *testing.B) {
	doc := enrichedDoc(100)
	b.ReportAllocs()
	for b.Loop() {
		SplitCodeBlocks(doc)
	}
}

func BenchmarkGoldmarkToHTML(b *testing.B) {
	conv := NewGoldmarkConverter()
	ctx := context.Background()

	for _, n := range []int{1, 10, 100} {
		doc := Compose(enrichedDoc(n), DefaultOptions())
		b.Run(fmt.Sprintf("sections_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := conv.ToHTML(ctx, doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGoldmarkToHTMLParallel(b *testing.B) {
	conv := NewGoldmarkConverter()
	doc := Compose(enrichedDoc(20), DefaultOptions())

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := conv.ToHTML(context.Background(), doc); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

func BenchmarkRenderChain(b *testing.B) {
	conv := NewGoldmarkConverter()
	sanitizer := NewSanitizer()
	post := &HTMLPostProcessor{MinDepth: 1, MaxDepth: 3}
	ctx := context.Background()
	doc := enrichedDoc(20)

	b.ReportAllocs()
	for b.Loop() {
		html, err := conv.ToHTML(ctx, Compose(doc, DefaultOptions()))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := post.Process(ctx, sanitizer.Sanitize(html)); err != nil {
			b.Fatal(err)
		}
	}
}
