package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"README.md":           "# r",
		"notes.txt":           "x",
		"guide/intro.md":      "# i",
		"guide/deep/setup.MD": "# s",
		"posts/a.markdown":    "# a",
		"posts/b.md":          "# b",
	})
	j := func(parts ...string) string { return filepath.Join(append([]string{dir}, parts...)...) }

	tests := []struct {
		name      string
		input     string
		pattern   string
		outputDir string
		ext       string
		want      []FileToRender
		wantErr   error
	}{
		{
			name:  "single file next to source",
			input: j("README.md"),
			ext:   ".html",
			want:  []FileToRender{{InputPath: j("README.md"), OutputPath: j("README.html")}},
		},
		{
			name:      "single file into output file",
			input:     j("README.md"),
			outputDir: j("out", "index.html"),
			ext:       ".html",
			want:      []FileToRender{{InputPath: j("README.md"), OutputPath: j("out", "index.html")}},
		},
		{
			name:      "directory keeps layout",
			input:     j("guide"),
			pattern:   "**/*",
			outputDir: j("site"),
			ext:       ".html",
			want: []FileToRender{
				{InputPath: j("guide", "deep", "setup.MD"), OutputPath: j("site", "deep", "setup.html")},
				{InputPath: j("guide", "intro.md"), OutputPath: j("site", "intro.html")},
			},
		},
		{
			name:    "directory pattern filters",
			input:   dir,
			pattern: "posts/*.md",
			ext:     ".md",
			want:    []FileToRender{{InputPath: j("posts", "b.md"), OutputPath: j("posts", "b.md")}},
		},
		{
			name:      "glob input",
			input:     j("posts") + "/*",
			outputDir: j("out"),
			ext:       ".html",
			want: []FileToRender{
				{InputPath: j("posts", "a.markdown"), OutputPath: j("out", "a.html")},
				{InputPath: j("posts", "b.md"), OutputPath: j("out", "b.html")},
			},
		},
		{
			name:    "glob without matches",
			input:   j("missing") + "/**/*.md",
			ext:     ".html",
			wantErr: ErrNoInputFiles,
		},
		{
			name:    "directory without matches",
			input:   dir,
			pattern: "*.txt",
			ext:     ".html",
			wantErr: ErrNoInputFiles,
		},
		{
			name:    "bad pattern",
			input:   dir,
			pattern: "[",
			ext:     ".html",
			wantErr: ErrUsage,
		},
		{
			name:    "wrong extension",
			input:   j("notes.txt"),
			ext:     ".html",
			wantErr: ErrInvalidExtension,
		},
		{
			name:    "missing file",
			input:   j("nope.md"),
			ext:     ".html",
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := discoverFiles(tt.input, tt.pattern, tt.outputDir, tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("discoverFiles() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("discoverFiles() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		ext          string
		want         string
	}{
		{"no output dir", "docs/a.md", "", "", ".html", "docs/a.html"},
		{"markdown extension swap", "docs/a.markdown", "", "", ".md", "docs/a.md"},
		{"output dir", "docs/a.md", "out", "", ".html", "out/a.html"},
		{"output file", "docs/a.md", "out/page.html", "", ".html", "out/page.html"},
		{"relative layout", "docs/x/y/a.md", "out", "docs", ".html", "out/x/y/a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(filepath.FromSlash(tt.inputPath), filepath.FromSlash(tt.outputDir),
				filepath.FromSlash(tt.baseInputDir), tt.ext)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"a.MD", true},
		{"a.markdown", true},
		{"a.mdx", false},
		{"a.txt", false},
		{"md", false},
	}

	for _, tt := range tests {
		if got := isMarkdown(tt.path); got != tt.want {
			t.Errorf("isMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsGlob(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]bool{
		"docs":         false,
		"docs/a.md":    false,
		"docs/*.md":    true,
		"docs/**":      true,
		"a?.md":        true,
		"[ab].md":      true,
		"{a,b}.md":     true,
		"dir.with.dot": false,
	} {
		if got := isGlob(input); got != want {
			t.Errorf("isGlob(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{32, false},
		{33, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n, 32)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
