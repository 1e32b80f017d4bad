package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdenrich/internal/config"
)

func TestAssetDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		files  map[string]string
		edit   string // file rewritten between the two digests
		config func(dir string, cfg *config.Config)
	}{
		{
			name:  "named style in asset directory",
			files: map[string]string{"styles/brand.css": "body { color: red; }"},
			edit:  "styles/brand.css",
			config: func(dir string, cfg *config.Config) {
				cfg.Render.AssetPath = dir
				cfg.Render.Style = "brand"
			},
		},
		{
			name:  "page template in asset directory",
			files: map[string]string{"templates/page.html": "<main>{{.Body}}</main>"},
			edit:  "templates/page.html",
			config: func(dir string, cfg *config.Config) {
				cfg.Render.AssetPath = dir
			},
		},
		{
			name:  "style file path",
			files: map[string]string{"site.css": "p { margin: 0; }"},
			edit:  "site.css",
			config: func(dir string, cfg *config.Config) {
				cfg.Render.Style = filepath.Join(dir, "site.css")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := setupTestDir(t, tt.files)
			cfg := config.DefaultConfig()
			tt.config(dir, cfg)

			before := assetDigest(cfg)
			if again := assetDigest(cfg); again != before {
				t.Fatalf("assetDigest() not stable: %s then %s", before, again)
			}

			path := filepath.Join(dir, tt.edit)
			if err := os.WriteFile(path, []byte(tt.files[tt.edit]+"\n/* edited */"), 0o644); err != nil {
				t.Fatal(err)
			}
			if after := assetDigest(cfg); after == before {
				t.Errorf("assetDigest() unchanged after editing %s", tt.edit)
			}
		})
	}
}

func TestAssetDigest_MissingAssetsStillHash(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Render.Style = "does-not-exist"
	if got := assetDigest(cfg); got == "" {
		t.Error("assetDigest() = empty, want a digest")
	}
}

func TestRun_RenderCacheSeesStyleEdits(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"post.md":                 sampleDoc,
		"assets/styles/brand.css": "body { color: red; }",
	})
	args := []string{
		"render", filepath.Join(dir, "post.md"),
		"--standalone", "--style", "brand",
		"--asset-path", filepath.Join(dir, "assets"),
		"--cache", "--cache-path", filepath.Join(dir, "cache.db"),
		"-v",
	}

	env, _, stderr := testEnv()
	if code := run(context.Background(), args, env); code != ExitSuccess {
		t.Fatalf("first run() = %d, stderr: %s", code, stderr.String())
	}

	css := filepath.Join(dir, "assets", "styles", "brand.css")
	if err := os.WriteFile(css, []byte("body { color: blue; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	env, stdout, stderr := testEnv()
	if code := run(context.Background(), args, env); code != ExitSuccess {
		t.Fatalf("second run() = %d, stderr: %s", code, stderr.String())
	}
	if strings.Contains(stdout.String(), "cached") {
		t.Errorf("edited stylesheet should miss the cache, got: %s", stdout.String())
	}
	if got := readFile(t, filepath.Join(dir, "post.html")); !strings.Contains(got, "color: blue") {
		t.Errorf("page does not use the edited stylesheet:\n%s", got)
	}
}
