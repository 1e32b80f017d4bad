package mdenrich

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mdenrich/internal/assets"
	"github.com/alnah/go-mdenrich/internal/dateutil"
	"github.com/alnah/go-mdenrich/internal/fileutil"
	"github.com/alnah/go-mdenrich/internal/frontmatter"
	"github.com/alnah/go-mdenrich/internal/pipeline"
)

// FallbackHTML replaces the document body when RenderOrFallback fails.
const FallbackHTML = `<p class="render-error">This document could not be rendered.</p>`

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Enricher)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Converter renders markdown documents. Create with NewConverter; a
// Converter is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	sanitizer     *pipeline.Sanitizer
	page          *template.Template
	css           string // page style followed by highlight rules
}

// NewConverter creates a Converter. Style, highlight CSS and the page
// template are resolved here, so a returned Converter never fails on
// asset loading.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConverterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
	}

	c := &Converter{
		cfg:           cfg,
		assetLoader:   loader,
		preprocessor:  pipeline.NewEnricher(cfg.enrich),
		htmlConverter: pipeline.NewGoldmarkConverter(pipeline.WithHardWraps(cfg.hardWraps)),
		sanitizer:     pipeline.NewSanitizer(),
	}

	style, err := c.resolveStyle()
	if err != nil {
		return nil, err
	}
	highlight, err := pipeline.HighlightCSS(cfg.highlightStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: highlight style %q: %w", ErrInvalidOption, cfg.highlightStyle, err)
	}
	c.css = style + "\n" + highlight

	if c.page, err = c.loadPageTemplate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Render runs the full pipeline. Internal panics are recovered into
// ErrRender so a malformed document never crashes the caller.
func (c *Converter) Render(ctx context.Context, input Input) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()
	start := time.Now()

	res, err = c.enrich(ctx, input.Markdown)
	if err != nil {
		return nil, err
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, res.Enriched)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if c.cfg.sanitize {
		htmlContent = c.sanitizer.Sanitize(htmlContent)
	}

	if input.SourceDir != "" && input.OutputDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir, input.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	post := &pipeline.HTMLPostProcessor{MinDepth: minTOCDepth, MaxDepth: maxTOCDepth}
	processed, err := post.Process(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("post-processing HTML: %w", err)
	}

	res.HTML = processed.HTML
	res.Direction = string(processed.Direction)
	res.Headings = make([]Heading, len(processed.Headings))
	for i, h := range processed.Headings {
		res.Headings[i] = Heading(h)
	}
	if res.Title == "" {
		res.Title = firstTitle(processed.Headings)
	}

	if input.TOC != nil {
		res.TOC = renderTOC(processed.Headings, input.TOC)
		if res.TOC != "" {
			res.HTML = res.TOC + "\n" + res.HTML
		}
	}

	if input.Standalone {
		if res.Page, err = c.renderPage(res); err != nil {
			return nil, err
		}
	}

	c.cfg.logger.DebugContext(ctx, "rendered document",
		"title", res.Title,
		"bytes", len(input.Markdown),
		"headings", len(res.Headings),
		"duration", time.Since(start),
	)
	return res, nil
}

// Enrich parses the frontmatter and runs the enrichment stages without
// rendering HTML. HTML, Page, TOC and Headings are left empty.
func (c *Converter) Enrich(ctx context.Context, input Input) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	return c.enrich(ctx, input.Markdown)
}

// RenderOrFallback is Render for callers that must always show something:
// on failure the error is logged and the body is FallbackHTML.
func (c *Converter) RenderOrFallback(ctx context.Context, input Input) *Result {
	res, err := c.Render(ctx, input)
	if err == nil {
		return res
	}

	c.cfg.logger.WarnContext(ctx, "render failed, using fallback", "error", err)
	fallback := &Result{
		HTML:        FallbackHTML,
		ReadingTime: 1,
		Direction:   DirectionAuto,
	}
	if input.Standalone {
		fallback.Title = "Document"
		if page, err := c.renderPage(fallback); err == nil {
			fallback.Page = page
		} else {
			fallback.Page = FallbackHTML
		}
	}
	return fallback
}

func (c *Converter) enrich(ctx context.Context, markdown string) (*Result, error) {
	meta, body := frontmatter.Parse(pipeline.NormalizeLineEndings(markdown))

	enriched := c.preprocessor.PreprocessMarkdown(ctx, body)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Meta:        Metadata{data: meta},
		Enriched:    enriched,
		ReadingTime: pipeline.ReadingTime(body),
		Direction:   string(pipeline.DetectDirection(body)),
	}
	c.applyMetadata(ctx, res, meta)
	return res, nil
}

// applyMetadata fills the well-known frontmatter fields. An unparsable
// date is logged and left zero.
func (c *Converter) applyMetadata(ctx context.Context, res *Result, meta *frontmatter.Data) {
	res.Title = meta.String("title")

	res.Description = meta.String("description")
	if res.Description == "" {
		res.Description = meta.String("summary")
	}

	if v, ok := meta.Get("tags"); ok {
		if v.IsSequence() {
			res.Tags = v.Items()
		} else {
			res.Tags = splitTags(v.String())
		}
	}

	if raw := meta.String("date"); raw != "" {
		date, err := dateutil.ParseDate(raw)
		if err != nil {
			c.cfg.logger.WarnContext(ctx, "ignoring frontmatter date", "value", raw, "error", err)
		} else {
			res.Date = date
		}
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func firstTitle(headings []pipeline.Heading) string {
	for _, h := range headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

func renderTOC(headings []pipeline.Heading, toc *TOC) string {
	minDepth, maxDepth := toc.depths()
	selected := make([]pipeline.Heading, 0, len(headings))
	for _, h := range headings {
		if h.Level >= minDepth && h.Level <= maxDepth {
			selected = append(selected, h)
		}
	}
	return pipeline.RenderTOC(selected, pipeline.TOCData{Title: toc.Title, Numbered: toc.Numbered})
}

// validateInput is the trust boundary for library callers that build Input
// by hand; the CLI validates its configuration earlier as well.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if len(input.Markdown) > c.cfg.maxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(input.Markdown), c.cfg.maxInputSize)
	}
	return input.TOC.Validate()
}

// resolveStyle turns the style option (name, path or CSS content) into CSS.
func (c *Converter) resolveStyle() (string, error) {
	input := c.cfg.style
	if input == "" {
		return "", nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: reading %q: %w", ErrStyleNotFound, input, err)
		}
		return string(content), nil
	}

	if fileutil.IsCSS(input) {
		return input, nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}
