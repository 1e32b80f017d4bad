package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdenrich/internal/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mdenrich.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	want := pipeline.DefaultOptions()
	want.SpoilerClassName = pipeline.DefaultSpoilerClass
	if diff := cmp.Diff(want, cfg.Enrich.PipelineOptions()); diff != "" {
		t.Errorf("PipelineOptions() mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Render.Sanitize || cfg.Render.Style != DefaultStyle || cfg.Output.Format != "html" {
		t.Errorf("unexpected render/output defaults: %+v %+v", cfg.Render, cfg.Output)
	}
	if cfg.Cache.Enabled || cfg.TOC.Enabled {
		t.Error("cache and toc should be off by default")
	}
}

func TestEnrichConfig_PipelineOptions(t *testing.T) {
	t.Parallel()

	e := EnrichConfig{
		Tags:            true,
		GitHubRepo:      "acme/site",
		IssueBaseURL:    "https://tracker.example.com/i/",
		MentionsBaseURL: "/people/",
		TagsBaseURL:     "/tags/",
		SpoilerClass:    "hidden",
		LinkBasePath:    "/wiki/",
		EmojiOverrides:  map[string]string{"ship": "🚢"},
	}

	want := pipeline.Options{
		EnableTags:           true,
		GitHubRepo:           "acme/site",
		IssueBaseURL:         "https://tracker.example.com/i/",
		MentionsBaseURL:      "/people/",
		TagsBaseURL:          "/tags/",
		SpoilerClassName:     "hidden",
		InternalLinkBasePath: "/wiki/",
		EmojiOverrides:       map[string]string{"ship": "🚢"},
	}
	if diff := cmp.Diff(want, e.PipelineOptions()); diff != "" {
		t.Errorf("PipelineOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "https issue url", mutate: func(c *Config) { c.Enrich.IssueBaseURL = "https://example.com/issues/" }},
		{name: "relative tags url", mutate: func(c *Config) { c.Enrich.TagsBaseURL = "/tags/" }},
		{name: "http url rejected", mutate: func(c *Config) { c.Enrich.MentionsBaseURL = "http://example.com/" }, wantErr: ErrInvalidValue},
		{name: "javascript url rejected", mutate: func(c *Config) { c.Enrich.TagsBaseURL = "javascript:alert(1)" }, wantErr: ErrInvalidValue},
		{name: "https without host", mutate: func(c *Config) { c.Enrich.IssueBaseURL = "https:///x" }, wantErr: ErrInvalidValue},
		{name: "long url", mutate: func(c *Config) { c.Enrich.TagsBaseURL = "/" + strings.Repeat("a", MaxURLLength) }, wantErr: ErrFieldTooLong},
		{name: "valid repo", mutate: func(c *Config) { c.Enrich.GitHubRepo = "owner/repo.go" }},
		{name: "repo without slash", mutate: func(c *Config) { c.Enrich.GitHubRepo = "owner" }, wantErr: ErrInvalidValue},
		{name: "repo with spaces", mutate: func(c *Config) { c.Enrich.GitHubRepo = "own er/repo" }, wantErr: ErrInvalidValue},
		{name: "spoiler class with quote", mutate: func(c *Config) { c.Enrich.SpoilerClass = `x" onclick="y` }, wantErr: ErrInvalidValue},
		{name: "spoiler class starting with digit", mutate: func(c *Config) { c.Enrich.SpoilerClass = "1x" }, wantErr: ErrInvalidValue},
		{name: "emoji override", mutate: func(c *Config) { c.Enrich.EmojiOverrides = map[string]string{"party_parrot": "🦜"} }},
		{name: "emoji key with colon", mutate: func(c *Config) { c.Enrich.EmojiOverrides = map[string]string{":x:": "x"} }, wantErr: ErrInvalidValue},
		{name: "empty emoji glyph", mutate: func(c *Config) { c.Enrich.EmojiOverrides = map[string]string{"x": ""} }, wantErr: ErrInvalidValue},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "pdf" }, wantErr: ErrInvalidValue},
		{name: "negative workers", mutate: func(c *Config) { c.Render.Workers = -1 }, wantErr: ErrInvalidValue},
		{name: "toc depth too deep", mutate: func(c *Config) { c.TOC.MaxDepth = 7 }, wantErr: ErrInvalidValue},
		{name: "toc min above max", mutate: func(c *Config) { c.TOC.MinDepth, c.TOC.MaxDepth = 4, 2 }, wantErr: ErrInvalidValue},
		{name: "long toc title", mutate: func(c *Config) { c.TOC.Title = strings.Repeat("t", MaxTOCTitleLength+1) }, wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
enrich:
  emojis: false
  githubRepo: acme/blog
  emojiOverrides:
    ship: "🚢"
render:
  style: minimal
toc:
  enabled: true
  maxDepth: 2
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Enrich.Emojis {
		t.Error("Enrich.Emojis should be disabled by the file")
	}
	if !cfg.Enrich.Tags || !cfg.Enrich.Embeds {
		t.Error("unspecified enrich toggles should keep their defaults")
	}
	if cfg.Enrich.GitHubRepo != "acme/blog" || cfg.Enrich.EmojiOverrides["ship"] != "🚢" {
		t.Errorf("Enrich = %+v", cfg.Enrich)
	}
	if cfg.Render.Style != "minimal" || !cfg.Render.Sanitize || cfg.Render.HighlightStyle != DefaultHighlightStyle {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if !cfg.TOC.Enabled || cfg.TOC.MaxDepth != 2 || cfg.TOC.MinDepth != DefaultTOCMinDepth {
		t.Errorf("TOC = %+v", cfg.TOC)
	}
	if cfg.Input.Pattern != DefaultPattern {
		t.Errorf("Input.Pattern = %q, want default", cfg.Input.Pattern)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "empty name",
			path:    func(t *testing.T) string { return "" },
			wantErr: ErrEmptyConfigName,
		},
		{
			name:    "missing file path",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") },
			wantErr: ErrConfigNotFound,
		},
		{
			name:    "unknown field",
			path:    func(t *testing.T) string { return writeConfig(t, "render:\n  colour: red\n") },
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid yaml",
			path:    func(t *testing.T) string { return writeConfig(t, "toc: [\n") },
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid value",
			path:    func(t *testing.T) string { return writeConfig(t, "enrich:\n  githubRepo: nope\n") },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown name",
			path:    func(t *testing.T) string { return "no-such-config-name-4821" },
			wantErr: ErrConfigNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_ByNameFromUserConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", xdg)

	paths := SearchPaths("blog")
	if len(paths) != 4 || paths[0] != "blog.yaml" || paths[1] != "blog.yml" {
		t.Fatalf("SearchPaths() = %v", paths)
	}

	userPath := paths[3]
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userPath, []byte("output:\n  standalone: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("blog")
	if err != nil {
		t.Fatalf("LoadConfig(blog) error = %v", err)
	}
	if !cfg.Output.Standalone {
		t.Error("Output.Standalone should come from the user config file")
	}
}
