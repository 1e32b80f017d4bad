package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-mdenrich/internal/fileutil"
	"github.com/alnah/go-mdenrich/internal/pipeline"
	"github.com/alnah/go-mdenrich/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength          = 2048
	MaxRepoLength         = 140 // 39 owner + "/" + 100 repo
	MaxClassLength        = 50
	MaxPatternLength      = 256
	MaxStyleLength        = 4096 // names, paths or inline CSS
	MaxTOCTitleLength     = 100
	MaxEmojiNameLength    = 50
	MaxEmojiGlyphLength   = 32
	MaxHighlightStyleName = 50
)

// Default values used by DefaultConfig.
const (
	DefaultPattern        = "**/*.md"
	DefaultFormat         = "html"
	DefaultStyle          = "default"
	DefaultHighlightStyle = "github"
	DefaultTOCMinDepth    = 1
	DefaultTOCMaxDepth    = 3
)

var (
	repoPattern      = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)
	classPattern     = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)
	shortcodePattern = regexp.MustCompile(`^[a-zA-Z0-9_+-]+$`)
)

// Config holds all configuration for document rendering.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Enrich EnrichConfig `yaml:"enrich"`
	Render RenderConfig `yaml:"render"`
	TOC    TOCConfig    `yaml:"toc"`
	Cache  CacheConfig  `yaml:"cache"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // used when no input argument is given
	Pattern    string `yaml:"pattern"`    // doublestar glob applied inside directories
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	Standalone bool   `yaml:"standalone"` // full HTML page instead of a fragment
	Format     string `yaml:"format"`     // "html" or "md"
}

// EnrichConfig mirrors the markdown enrichment options.
type EnrichConfig struct {
	Emojis          bool              `yaml:"emojis"`
	CommentsRemoval bool              `yaml:"commentsRemoval"`
	Tags            bool              `yaml:"tags"`
	InternalLinks   bool              `yaml:"internalLinks"`
	Embeds          bool              `yaml:"embeds"`
	ImageSizes      bool              `yaml:"imageSizes"`
	GitHubRepo      string            `yaml:"githubRepo"` // owner/repo for bare #123 references
	IssueBaseURL    string            `yaml:"issueBaseURL"`
	MentionsBaseURL string            `yaml:"mentionsBaseURL"`
	TagsBaseURL     string            `yaml:"tagsBaseURL"`
	SpoilerClass    string            `yaml:"spoilerClass"`
	LinkBasePath    string            `yaml:"linkBasePath"`
	EmojiOverrides  map[string]string `yaml:"emojiOverrides"`
}

// RenderConfig defines HTML rendering options.
type RenderConfig struct {
	Style          string `yaml:"style"`     // name, file path or inline CSS
	AssetPath      string `yaml:"assetPath"` // custom styles/templates directory
	Sanitize       bool   `yaml:"sanitize"`
	HardWraps      bool   `yaml:"hardWraps"`
	HighlightStyle string `yaml:"highlightStyle"`
	Workers        int    `yaml:"workers"` // 0 = auto
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	Numbered bool   `yaml:"numbered"`
	MinDepth int    `yaml:"minDepth"`
	MaxDepth int    `yaml:"maxDepth"`
}

// CacheConfig defines the render cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // empty = user cache directory
}

// DefaultConfig returns the configuration used when no file is given:
// every enrichment enabled, sanitized HTML fragments, no cache.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Pattern: DefaultPattern},
		Output: OutputConfig{Format: DefaultFormat},
		Enrich: EnrichConfig{
			Emojis:          true,
			CommentsRemoval: true,
			Tags:            true,
			InternalLinks:   true,
			Embeds:          true,
			ImageSizes:      true,
			SpoilerClass:    pipeline.DefaultSpoilerClass,
		},
		Render: RenderConfig{
			Style:          DefaultStyle,
			Sanitize:       true,
			HighlightStyle: DefaultHighlightStyle,
		},
		TOC: TOCConfig{MinDepth: DefaultTOCMinDepth, MaxDepth: DefaultTOCMaxDepth},
	}
}

// PipelineOptions converts the enrich section into composer options.
func (e EnrichConfig) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		EnableEmojis:          e.Emojis,
		EnableCommentsRemoval: e.CommentsRemoval,
		EnableTags:            e.Tags,
		EnableInternalLinks:   e.InternalLinks,
		EnableEmbeds:          e.Embeds,
		EnableImageSizes:      e.ImageSizes,
		GitHubRepo:            e.GitHubRepo,
		IssueBaseURL:          e.IssueBaseURL,
		MentionsBaseURL:       e.MentionsBaseURL,
		TagsBaseURL:           e.TagsBaseURL,
		SpoilerClassName:      e.SpoilerClass,
		EmojiOverrides:        e.EmojiOverrides,
		InternalLinkBasePath:  e.LinkBasePath,
	}
}

// Validate checks lengths, URL schemes and formats. Called automatically by
// LoadConfig, and again by the CLI after flag and environment overrides.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.pattern", c.Input.Pattern, MaxPatternLength); err != nil {
		return err
	}
	switch c.Output.Format {
	case "", "html", "md":
	default:
		return fmt.Errorf("%w: output.format %q (must be html or md)", ErrInvalidValue, c.Output.Format)
	}

	if err := c.Enrich.validate(); err != nil {
		return err
	}

	if err := validateFieldLength("render.style", c.Render.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.highlightStyle", c.Render.HighlightStyle, MaxHighlightStyleName); err != nil {
		return err
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers must be >= 0, got %d", ErrInvalidValue, c.Render.Workers)
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if c.TOC.MinDepth < 0 || c.TOC.MinDepth > 6 {
		return fmt.Errorf("%w: toc.minDepth must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MinDepth)
	}
	if c.TOC.MaxDepth < 0 || c.TOC.MaxDepth > 6 {
		return fmt.Errorf("%w: toc.maxDepth must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MaxDepth)
	}
	if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) > toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
	}

	return validateFieldLength("cache.path", c.Cache.Path, MaxURLLength)
}

func (e *EnrichConfig) validate() error {
	if err := validateFieldLength("enrich.githubRepo", e.GitHubRepo, MaxRepoLength); err != nil {
		return err
	}
	if e.GitHubRepo != "" && !repoPattern.MatchString(e.GitHubRepo) {
		return fmt.Errorf("%w: enrich.githubRepo %q (must be owner/repo)", ErrInvalidValue, e.GitHubRepo)
	}

	for _, f := range []struct{ name, value string }{
		{"enrich.issueBaseURL", e.IssueBaseURL},
		{"enrich.mentionsBaseURL", e.MentionsBaseURL},
		{"enrich.tagsBaseURL", e.TagsBaseURL},
		{"enrich.linkBasePath", e.LinkBasePath},
	} {
		if err := validateBaseURL(f.name, f.value); err != nil {
			return err
		}
	}

	if err := validateFieldLength("enrich.spoilerClass", e.SpoilerClass, MaxClassLength); err != nil {
		return err
	}
	if e.SpoilerClass != "" && !classPattern.MatchString(e.SpoilerClass) {
		return fmt.Errorf("%w: enrich.spoilerClass %q", ErrInvalidValue, e.SpoilerClass)
	}

	for name, glyph := range e.EmojiOverrides {
		if len(name) > MaxEmojiNameLength || !shortcodePattern.MatchString(name) {
			return fmt.Errorf("%w: enrich.emojiOverrides key %q", ErrInvalidValue, name)
		}
		if glyph == "" {
			return fmt.Errorf("%w: enrich.emojiOverrides[%s] is empty", ErrInvalidValue, name)
		}
		if err := validateFieldLength("enrich.emojiOverrides["+name+"]", glyph, MaxEmojiGlyphLength); err != nil {
			return err
		}
	}
	return nil
}

// validateBaseURL accepts empty values, https URLs and relative references.
func validateBaseURL(fieldName, value string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, value, MaxURLLength); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if u.Scheme != "" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s must be https or relative, got scheme %q", ErrInvalidValue, fieldName, u.Scheme)
	}
	if u.Scheme == "https" && u.Host == "" {
		return fmt.Errorf("%w: %s has no host", ErrInvalidValue, fieldName)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name on top of
// DefaultConfig. A value containing a path separator is a file path;
// anything else is a name searched with SearchPaths. Missing files are
// errors, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// ./NAME.yaml, ./NAME.yml, then the same under the user config directory
// ($XDG_CONFIG_HOME/go-mdenrich on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdenrich", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
