package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-mdenrich/internal/hints"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoInputFiles       = errors.New("no markdown files found")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverFiles resolves input to markdown files. input is a file, a
// directory searched with pattern, or a doublestar glob. ext is the output
// extension (".html" or ".md").
func discoverFiles(input, pattern, outputDir, ext string) ([]FileToRender, error) {
	if isGlob(input) {
		base, glob := doublestar.SplitPattern(filepath.ToSlash(input))
		files, err := globFiles(filepath.FromSlash(base), glob, outputDir, ext)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: %s%s", ErrNoInputFiles, input, hints.ForNoInputFiles(input))
		}
		return files, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(input); err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: input, OutputPath: resolveOutputPath(input, outputDir, "", ext)}}, nil
	}

	files, err := globFiles(input, pattern, outputDir, ext)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoInputFiles, input, hints.ForNoInputFiles(pattern))
	}
	return files, nil
}

// globFiles matches pattern under dir and keeps markdown files, sorted.
func globFiles(dir, pattern, outputDir, ext string) ([]FileToRender, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrUsage, pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	slices.Sort(matches)

	files := make([]FileToRender, 0, len(matches))
	for _, m := range matches {
		if !isMarkdown(m) {
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(m))
		files = append(files, FileToRender{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, dir, ext),
		})
	}
	return files, nil
}

// resolveOutputPath determines the output path for a markdown file. A
// directory input keeps its relative layout under outputDir; an outputDir
// ending in ext is used as the output file itself.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+ext)
	}

	if strings.HasSuffix(outputDir, ext) {
		return outputDir
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+ext)
		}
	}

	return filepath.Join(outputDir, base+ext)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

func isGlob(input string) bool {
	return strings.ContainsAny(input, "*?[{")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n, maxWorkers int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
