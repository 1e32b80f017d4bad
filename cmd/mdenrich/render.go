package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdenrich"
	"github.com/alnah/go-mdenrich/internal/assets"
	"github.com/alnah/go-mdenrich/internal/cache"
	"github.com/alnah/go-mdenrich/internal/config"
	"github.com/alnah/go-mdenrich/internal/fileutil"
	"github.com/alnah/go-mdenrich/internal/hints"
	"github.com/alnah/go-mdenrich/internal/yamlutil"
)

// renderJob is a fully resolved render command.
type renderJob struct {
	cfg       *config.Config
	input     string
	outputDir string
	ext       string
	params    *renderParams
	pool      *converterPool
	store     *cache.Cache // nil without cache
	logger    *slog.Logger
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := resolveConfig(flags, env, logger)
	if err != nil {
		return err
	}

	job, err := newRenderJob(positional, flags, cfg, logger)
	if err != nil {
		return err
	}
	defer job.Close()

	files, err := discoverFiles(job.input, cfg.Input.Pattern, job.outputDir, job.ext)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	logger.Debug("discovered files", "count", len(files), "workers", job.pool.Size())

	if err := job.renderOnce(ctx, files, flags, env); err != nil && !flags.watch {
		return err
	}

	if flags.watch {
		return watch(ctx, job, flags, env)
	}
	return nil
}

// resolveConfig layers defaults, the config file, MDENRICH_* variables
// and flags, then validates the result.
func resolveConfig(flags *renderFlags, env *Environment, logger *slog.Logger) (*config.Config, error) {
	vars, err := readEnvVars(env.Environ(), flags.common.envFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	warnUnknownEnvVars(logger, vars)
	envCfg := loadEnvConfig(vars)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return nil, err
	}
	if err := validateWorkers(cfg.Render.Workers, mdenrich.MaxPoolSize); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) error {
	setString(&cfg.Output.DefaultDir, flags.io.output)
	setString(&cfg.Input.Pattern, flags.io.pattern)
	setString(&cfg.Output.Format, flags.io.format)
	if flags.io.workers != 0 {
		cfg.Render.Workers = flags.io.workers
	}
	if flags.io.standalone {
		cfg.Output.Standalone = true
	}

	e := &flags.enrich
	setString(&cfg.Enrich.GitHubRepo, e.githubRepo)
	setString(&cfg.Enrich.IssueBaseURL, e.issueBaseURL)
	setString(&cfg.Enrich.MentionsBaseURL, e.mentionsBaseURL)
	setString(&cfg.Enrich.TagsBaseURL, e.tagsBaseURL)
	setString(&cfg.Enrich.SpoilerClass, e.spoilerClass)
	setString(&cfg.Enrich.LinkBasePath, e.linkBasePath)
	disable(&cfg.Enrich.Emojis, e.noEmojis)
	disable(&cfg.Enrich.CommentsRemoval, e.noCommentsRemoval)
	disable(&cfg.Enrich.Tags, e.noTags)
	disable(&cfg.Enrich.InternalLinks, e.noInternalLinks)
	disable(&cfg.Enrich.Embeds, e.noEmbeds)
	disable(&cfg.Enrich.ImageSizes, e.noImageSizes)

	overrides, err := parseEmojiOverrides(e.emojis)
	if err != nil {
		return err
	}
	if len(overrides) > 0 && cfg.Enrich.EmojiOverrides == nil {
		cfg.Enrich.EmojiOverrides = make(map[string]string, len(overrides))
	}
	for name, glyph := range overrides {
		cfg.Enrich.EmojiOverrides[name] = glyph
	}

	s := &flags.style
	setString(&cfg.Render.Style, s.style)
	setString(&cfg.Render.AssetPath, s.assetPath)
	setString(&cfg.Render.HighlightStyle, s.highlightStyle)
	disable(&cfg.Render.Sanitize, s.noSanitize)
	if s.hardWraps {
		cfg.Render.HardWraps = true
	}

	t := &flags.toc
	if t.enabled {
		cfg.TOC.Enabled = true
	}
	setString(&cfg.TOC.Title, t.title)
	if t.numbered {
		cfg.TOC.Numbered = true
	}
	if t.minDepth != 0 {
		cfg.TOC.MinDepth = t.minDepth
	}
	if t.maxDepth != 0 {
		cfg.TOC.MaxDepth = t.maxDepth
	}

	if flags.cache.enabled {
		cfg.Cache.Enabled = true
	}
	disable(&cfg.Cache.Enabled, flags.cache.disabled)
	setString(&cfg.Cache.Path, flags.cache.path)
	return nil
}

func disable(dst *bool, off bool) {
	if off {
		*dst = false
	}
}

// newRenderJob resolves the input, builds the converter pool and opens
// the cache. A locked cache is skipped with a warning.
func newRenderJob(positional []string, flags *renderFlags, cfg *config.Config, logger *slog.Logger) (*renderJob, error) {
	input := cfg.Input.DefaultDir
	if len(positional) == 1 {
		input = positional[0]
	}
	if input == "" {
		return nil, ErrNoInput
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = formatHTML
	}
	ext := "." + cfg.Output.Format
	if cfg.Output.Format == formatMD && cfg.Output.DefaultDir == "" {
		return nil, fmt.Errorf("%w: --format md needs --output so sources are not overwritten", ErrUsage)
	}

	opts := []mdenrich.Option{
		mdenrich.WithEnrichOptions(cfg.Enrich.PipelineOptions()),
		mdenrich.WithStyle(cfg.Render.Style),
		mdenrich.WithAssetPath(cfg.Render.AssetPath),
		mdenrich.WithSanitize(cfg.Render.Sanitize),
		mdenrich.WithHardWraps(cfg.Render.HardWraps),
		mdenrich.WithHighlightStyle(cfg.Render.HighlightStyle),
		mdenrich.WithLogger(logger),
	}
	if flags.io.timeout > 0 {
		opts = append(opts, mdenrich.WithTimeout(flags.io.timeout))
	}

	// Surface option errors once, before any file is read.
	if _, err := mdenrich.NewConverter(opts...); err != nil {
		return nil, err
	}

	params := &renderParams{
		format:     cfg.Output.Format,
		standalone: cfg.Output.Standalone,
		logger:     logger,
	}
	if cfg.TOC.Enabled {
		params.toc = &mdenrich.TOC{
			Title:    cfg.TOC.Title,
			Numbered: cfg.TOC.Numbered,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}
	}

	var store *cache.Cache
	if cfg.Cache.Enabled {
		c, salt, err := openCache(cfg)
		switch {
		case errors.Is(err, cache.ErrLocked):
			logger.Warn("render cache in use, continuing without it"+hints.ForCacheLocked(), "path", cfg.Cache.Path)
		case err != nil:
			return nil, fmt.Errorf("opening render cache: %w", err)
		default:
			store = c
			params.cache = c
			params.cacheSalt = salt
		}
	}

	return &renderJob{
		cfg:       cfg,
		input:     input,
		outputDir: cfg.Output.DefaultDir,
		ext:       ext,
		params:    params,
		pool:      newConverterPool(cfg.Render.Workers, opts...),
		store:     store,
		logger:    logger,
	}, nil
}

// Close releases the pool and the cache.
func (j *renderJob) Close() {
	_ = j.pool.Close()
	if j.store != nil {
		if err := j.store.Close(); err != nil {
			j.logger.Warn("closing render cache", "error", err)
		}
	}
}

// openCache opens the render cache and derives the key salt from the
// version, the effective configuration and the stylesheet and page
// template contents.
func openCache(cfg *config.Config) (*cache.Cache, []byte, error) {
	path := cfg.Cache.Path
	if path == "" {
		var err error
		if path, err = cache.DefaultPath(); err != nil {
			return nil, nil, err
		}
	}

	encoded, err := yamlutil.Marshal(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding config: %w", err)
	}

	c, err := cache.Open(path)
	if err != nil {
		return nil, nil, err
	}
	salt := append([]byte(Version+"\n"), encoded...)
	salt = append(salt, '\n')
	return c, append(salt, assetDigest(cfg)...), nil
}

// assetDigest hashes the stylesheet and page template a converter built
// from cfg would load. Assets that fail to load hash as empty; the
// converter reports those errors itself.
func assetDigest(cfg *config.Config) string {
	var style, page []byte

	resolver, err := assets.NewAssetResolver(cfg.Render.AssetPath)
	if err == nil {
		if tmpl, err := resolver.LoadTemplate(assets.DefaultTemplateName); err == nil {
			page = []byte(tmpl)
		}
	}

	switch name := cfg.Render.Style; {
	case name == "":
	case fileutil.IsFilePath(name):
		if content, err := os.ReadFile(name); err == nil { // #nosec G304 -- user-provided path
			style = content
		}
	case fileutil.IsCSS(name):
		style = []byte(name)
	case resolver != nil:
		if css, err := resolver.LoadStyle(name); err == nil {
			style = []byte(css)
		}
	}
	return cache.Key(style, page)
}

// renderOnce renders files and prints the results.
func (j *renderJob) renderOnce(ctx context.Context, files []FileToRender, flags *renderFlags, env *Environment) error {
	results := renderBatch(ctx, j.pool, files, j.params)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env.Stdout, env.Stderr)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrRenderFailed, failed, len(results))
	}
	return nil
}
