package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// ioFlags holds input discovery and output flags.
type ioFlags struct {
	output     string
	workers    int
	pattern    string
	format     string
	standalone bool
	timeout    time.Duration
}

// enrichFlags holds the enrichment stage flags.
type enrichFlags struct {
	githubRepo        string
	issueBaseURL      string
	mentionsBaseURL   string
	tagsBaseURL       string
	spoilerClass      string
	linkBasePath      string
	emojis            []string // name=glyph
	noEmojis          bool
	noCommentsRemoval bool
	noTags            bool
	noInternalLinks   bool
	noEmbeds          bool
	noImageSizes      bool
}

// styleFlags holds HTML rendering flags.
type styleFlags struct {
	style          string
	assetPath      string
	highlightStyle string
	noSanitize     bool
	hardWraps      bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	numbered bool
	minDepth int
	maxDepth int
}

// cacheFlags holds render cache flags.
type cacheFlags struct {
	enabled  bool
	disabled bool
	path     string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	io     ioFlags
	enrich enrichFlags
	style  styleFlags
	toc    tocFlags
	cache  cacheFlags
	watch  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "load MDENRICH_* variables from a dotenv file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addIOFlags adds input and output flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *ioFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.pattern, "pattern", "", "glob applied inside input directories (default **/*.md)")
	fs.StringVar(&f.format, "format", "", "output format: html, md")
	fs.BoolVar(&f.standalone, "standalone", false, "write full HTML pages instead of fragments")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-document render timeout (e.g. 30s)")
}

// addEnrichFlags adds enrichment flags to a FlagSet.
func addEnrichFlags(fs *flag.FlagSet, f *enrichFlags) {
	fs.StringVar(&f.githubRepo, "github-repo", "", "owner/repo for bare #123 issue references")
	fs.StringVar(&f.issueBaseURL, "issue-base-url", "", "base URL for issue links")
	fs.StringVar(&f.mentionsBaseURL, "mentions-base-url", "", "base URL for @mention links")
	fs.StringVar(&f.tagsBaseURL, "tags-base-url", "", "base URL for #hashtag links")
	fs.StringVar(&f.spoilerClass, "spoiler-class", "", "CSS class for ||spoilers||")
	fs.StringVar(&f.linkBasePath, "link-base-path", "", "path prefix for [[wiki links]]")
	fs.StringArrayVar(&f.emojis, "emoji", nil, "emoji override name=glyph (repeatable)")
	fs.BoolVar(&f.noEmojis, "no-emojis", false, "keep :shortcodes: as text")
	fs.BoolVar(&f.noCommentsRemoval, "no-comments-removal", false, "keep HTML and [//]: # comments")
	fs.BoolVar(&f.noTags, "no-tags", false, "disable #hashtag links")
	fs.BoolVar(&f.noInternalLinks, "no-internal-links", false, "disable [[wiki links]]")
	fs.BoolVar(&f.noEmbeds, "no-embeds", false, "disable ![[media]] embeds")
	fs.BoolVar(&f.noImageSizes, "no-image-sizes", false, "disable image =WxH sizes")
}

// addStyleFlags adds rendering flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path for standalone pages")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom styles/templates directory")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "skip HTML sanitization (trusted input only)")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render single newlines as <br>")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "prepend a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.numbered, "toc-numbered", false, "number table of contents entries")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 1)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
}

// addCacheFlags adds render cache flags to a FlagSet.
func addCacheFlags(fs *flag.FlagSet, f *cacheFlags) {
	fs.BoolVar(&f.enabled, "cache", false, "reuse unchanged renders from the cache")
	fs.BoolVar(&f.disabled, "no-cache", false, "disable the render cache")
	fs.StringVar(&f.path, "cache-path", "", "render cache file")
}

// buildRenderFlagSet registers every render flag on a new FlagSet.
// Completion reuses it, so flag definitions live in one place.
func buildRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	addIOFlags(fs, &f.io)
	addCommonFlags(fs, &f.common)
	addEnrichFlags(fs, &f.enrich)
	addStyleFlags(fs, &f.style)
	addTOCFlags(fs, &f.toc)
	addCacheFlags(fs, &f.cache)
	fs.BoolVar(&f.watch, "watch", false, "re-render when inputs change")

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := buildRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// parseEmojiOverrides turns name=glyph pairs into a map.
func parseEmojiOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, glyph, ok := strings.Cut(pair, "=")
		name = strings.Trim(strings.TrimSpace(name), ":")
		if !ok || name == "" || glyph == "" {
			return nil, fmt.Errorf("%w: --emoji %q (want name=glyph)", ErrUsage, pair)
		}
		out[name] = glyph
	}
	return out, nil
}
