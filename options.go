package mdenrich

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-mdenrich/internal/assets"
	"github.com/alnah/go-mdenrich/internal/pipeline"
)

type converterConfig struct {
	timeout        time.Duration
	style          string // name, file path or inline CSS
	assetPath      string
	template       string
	enrich         EnrichOptions
	sanitize       bool
	hardWraps      bool
	highlightStyle string
	maxInputSize   int
	logger         *slog.Logger
	err            error // first invalid option, reported by NewConverter
}

func defaultConverterConfig() converterConfig {
	return converterConfig{
		timeout:        defaultTimeout,
		style:          assets.DefaultStyleName,
		template:       assets.DefaultTemplateName,
		enrich:         DefaultEnrichOptions(),
		sanitize:       true,
		highlightStyle: pipeline.DefaultHighlightStyle,
		maxInputSize:   MaxInputSize,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *converterConfig) fail(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: "+format, append([]any{ErrInvalidOption}, args...)...)
	}
}

// WithTimeout bounds each Render call. The default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		if d <= 0 {
			c.fail("timeout must be positive, got %v", d)
			return
		}
		c.timeout = d
	}
}

// WithStyle selects the stylesheet for standalone pages: a style name
// ("default", "minimal" or one under the asset path), a CSS file path, or
// inline CSS.
func WithStyle(style string) Option {
	return func(c *converterConfig) {
		c.style = style
	}
}

// WithAssetPath sets a directory holding styles/{name}.css and
// templates/{name}.html overrides. Missing assets fall back to the
// embedded ones.
func WithAssetPath(path string) Option {
	return func(c *converterConfig) {
		c.assetPath = path
	}
}

// WithTemplate selects the page template name used for standalone output.
func WithTemplate(name string) Option {
	return func(c *converterConfig) {
		if name == "" {
			c.fail("template name cannot be empty")
			return
		}
		c.template = name
	}
}

// WithEnrichOptions replaces the enrichment options.
// The default is DefaultEnrichOptions.
func WithEnrichOptions(opts EnrichOptions) Option {
	return func(c *converterConfig) {
		c.enrich = opts
	}
}

// WithSanitize turns HTML sanitization on or off. It is on by default;
// disable it only for trusted input.
func WithSanitize(enabled bool) Option {
	return func(c *converterConfig) {
		c.sanitize = enabled
	}
}

// WithHardWraps renders single newlines inside paragraphs as <br />.
func WithHardWraps(enabled bool) Option {
	return func(c *converterConfig) {
		c.hardWraps = enabled
	}
}

// WithHighlightStyle selects the chroma style used for code blocks in
// standalone pages.
func WithHighlightStyle(name string) Option {
	return func(c *converterConfig) {
		c.highlightStyle = name
	}
}

// WithMaxInputSize overrides MaxInputSize.
func WithMaxInputSize(n int) Option {
	return func(c *converterConfig) {
		if n <= 0 {
			c.fail("max input size must be positive, got %d", n)
			return
		}
		c.maxInputSize = n
	}
}

// WithLogger sets the logger used for render timings at debug level and
// recoverable problems at warn level. Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *converterConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
