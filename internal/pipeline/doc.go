// Package pipeline implements the markdown enrichment and HTML rendering
// stages.
//
// Enrichment rewrites markdown text before it reaches the renderer:
//   - callouts, footnotes, definition lists and abbreviations
//   - inline extras (==mark==, ^sup^, ~sub~), emoji shortcodes and spoilers
//   - comment removal, hashtags, issue links and @mentions
//   - wiki-links, media embeds and sized images
//
// Every stage is a pure string function that leaves fenced code untouched.
// Stages that match words or links also hide HTML tags and inline code from
// their patterns, so markup produced by an earlier stage is never rewritten
// again. Stages returns them in their fixed execution order and Compose or
// Enricher runs them.
//
// Rendering turns the enriched markdown into an HTML fragment with goldmark,
// filters it through a bluemonday allow-list, then annotates text direction
// and collects headings for the table of contents with goquery.
package pipeline
