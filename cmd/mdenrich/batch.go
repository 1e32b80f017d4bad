package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdenrich"
	"github.com/alnah/go-mdenrich/internal/cache"
	"github.com/alnah/go-mdenrich/internal/fileutil"
	"github.com/alnah/go-mdenrich/internal/hints"
	"github.com/alnah/go-mdenrich/internal/yamlutil"
)

// filePermissions is rw-r--r--: outputs are meant to be readable.
const filePermissions = 0o644

// Output formats.
const (
	formatHTML = "html"
	formatMD   = "md"
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrRenderFailed = errors.New("render failed")
)

// renderCache is the part of cache.Cache used by the batch.
type renderCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Compile-time interface implementation check.
var _ renderCache = (*cache.Cache)(nil)

// renderParams groups parameters shared across one batch.
type renderParams struct {
	format     string
	standalone bool
	toc        *mdenrich.TOC
	cache      renderCache // nil = no cache
	cacheSalt  []byte      // version and effective config
	logger     *slog.Logger
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Bytes      int
	Cached     bool
}

// renderBatch renders files concurrently, at most pool.Size() at a time.
// Failures are reported per file; one failure never stops the batch.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]RenderResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(1, pool.Size()))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = RenderResult{InputPath: f.InputPath, Err: err}
				return nil
			}

			r, err := pool.Acquire(ctx)
			if err != nil {
				results[i] = RenderResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(r)

			results[i] = renderFile(ctx, r, f, params)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, r Renderer, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	input := mdenrich.Input{
		Markdown:   string(content),
		SourceDir:  absDir(f.InputPath),
		OutputDir:  absDir(f.OutputPath),
		Standalone: params.standalone,
		TOC:        params.toc,
	}

	var key string
	if params.cache != nil {
		key = cache.Key(params.cacheSalt, []byte(input.SourceDir), []byte(input.OutputDir), content)
		if out, ok, err := params.cache.Get(key); err == nil && ok {
			if err := writeOutput(f.OutputPath, out); err != nil {
				return finish(err)
			}
			result.Bytes = len(out)
			result.Cached = true
			return finish(nil)
		}
	}

	out, err := renderOutput(ctx, r, input, params)
	if err != nil {
		return finish(err)
	}
	if err := writeOutput(f.OutputPath, out); err != nil {
		return finish(err)
	}
	result.Bytes = len(out)

	if params.cache != nil {
		if err := params.cache.Put(key, out); err != nil && params.logger != nil {
			params.logger.Warn("caching render", "path", f.InputPath, "error", err)
		}
	}
	return finish(nil)
}

// renderOutput produces the bytes written for input in the batch format.
func renderOutput(ctx context.Context, r Renderer, input mdenrich.Input, params *renderParams) ([]byte, error) {
	if params.format == formatMD {
		res, err := r.Enrich(ctx, input)
		if err != nil {
			return nil, err
		}
		return enrichedMarkdown(res)
	}

	res, err := r.Render(ctx, input)
	if err != nil {
		return nil, err
	}
	if params.standalone {
		return []byte(res.Page), nil
	}
	return []byte(res.HTML + "\n"), nil
}

// enrichedMarkdown re-emits the frontmatter, in its original key order,
// above the enriched body.
func enrichedMarkdown(res *mdenrich.Result) ([]byte, error) {
	if res.Meta.Len() == 0 {
		return []byte(res.Enriched), nil
	}

	fields := res.Meta.Map()
	keys := res.Meta.Keys()
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = fields[k]
	}
	ordered, err := yamlutil.Ordered(keys, values)
	if err != nil {
		return nil, err
	}
	front, err := yamlutil.Marshal(ordered)
	if err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	out := make([]byte, 0, len(front)+len(res.Enriched)+8)
	out = append(out, "---\n"...)
	out = append(out, front...)
	out = append(out, "---\n"...)
	out = append(out, res.Enriched...)
	return out, nil
}

func writeOutput(path string, data []byte) error {
	// #nosec G306 -- outputs are meant to be readable
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrWriteOutput, path, err, hints.ForOutputDirectory())
	}
	return nil
}

func absDir(path string) string {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Cached    int
	Bytes     int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Bytes += r.Bytes
		if r.Cached {
			summary.Cached++
		}
	}
	return summary
}

// printResults outputs render results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, stdout, stderr io.Writer) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			cached := ""
			if r.Cached {
				cached = ", cached"
			}
			fmt.Fprintf(stdout, "%s -> %s (%v, %s%s)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), humanize.Bytes(uint64(r.Bytes)), cached)
		} else {
			fmt.Fprintf(stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%s succeeded, %s failed\n",
			humanize.Comma(int64(summary.Succeeded)), humanize.Comma(int64(summary.Failed)))
		if verbose {
			fmt.Fprintf(stdout, "%s written, %d from cache\n", humanize.Bytes(uint64(summary.Bytes)), summary.Cached)
		}
	}

	return summary.Failed
}
