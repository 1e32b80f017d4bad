// Package mdenrich turns blog-style markdown documents into enriched
// markdown and sanitized HTML.
//
// # Quick Start
//
//	conv, err := mdenrich.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Render(ctx, mdenrich.Input{
//	    Markdown: "---\ntitle: Hello\n---\n> [!tip] Try it\n> It works.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Title, result.ReadingTime)
//	os.WriteFile("hello.html", []byte(result.HTML), 0o644)
//
// # Rendering Pipeline
//
//  1. Line endings are normalized and the frontmatter block is split off.
//  2. The body runs through the enrichment stages (callouts, footnotes,
//     highlight and sub/superscript, definition lists, abbreviations,
//     emoji shortcodes, spoilers, comment removal, hashtags, issue and
//     mention links, wiki-links, media embeds, sized images). Fenced code
//     blocks are never rewritten.
//  3. Goldmark renders the enriched markdown (GFM, chroma classes, unique
//     heading ids).
//  4. Bluemonday sanitizes the HTML with an allow-list that keeps the
//     markup produced in step 2.
//  5. Block elements get a dir attribute, headings are collected and an
//     optional table of contents is prepended.
//  6. With Input.Standalone the fragment is wrapped into a full page using
//     the embedded template and stylesheet.
//
// # Configuration
//
//	conv, err := mdenrich.NewConverter(
//	    mdenrich.WithTimeout(10 * time.Second),
//	    mdenrich.WithStyle("minimal"),
//	    mdenrich.WithEnrichOptions(mdenrich.EnrichOptions{
//	        EnableEmojis: true,
//	        GitHubRepo:   "owner/repo",
//	    }),
//	    mdenrich.WithLogger(slog.Default()),
//	)
//
// # Failure Handling
//
// Render recovers internal panics into ErrRender. Web handlers that must
// always return a page can use RenderOrFallback, which substitutes
// FallbackHTML for the document body on any error.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds the number
// of renders running at once in batch jobs:
//
//	pool := mdenrich.NewConverterPool(4, opts...)
//	conv, err := pool.Acquire(ctx)
//	defer pool.Release(conv)
package mdenrich
