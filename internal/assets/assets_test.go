package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeAsset(t *testing.T, base, rel, content string) {
	t.Helper()

	path := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "default"},
		{name: "dashes", input: "my-style_2"},
		{name: "empty", input: "", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "traversal", input: "..", wantErr: true},
		{name: "extension", input: "style.css", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error = %v", tt.input, err)
			}
		})
	}
}

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default style", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, ".callout") {
			t.Error("default style should style callouts")
		}
	})

	t.Run("page template", func(t *testing.T) {
		t.Parallel()

		tmpl, err := loader.LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		for _, want := range []string{"{{ .Body }}", "{{ .CSS }}", "{{ .Title }}"} {
			if !strings.Contains(tmpl, want) {
				t.Errorf("page template missing %q", want)
			}
		}
	})

	t.Run("missing assets", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(nope) error = %v, want ErrStyleNotFound", err)
		}
		if _, err := loader.LoadTemplate("nope"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate(nope) error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := loader.LoadStyle("../x"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(../x) error = %v, want ErrInvalidAssetName", err)
		}
		if _, err := loader.LoadTemplate("page.html"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate(page.html) error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"default", "minimal"}, StyleNames()); diff != "" {
		t.Errorf("StyleNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDirLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewDirLoader(t.TempDir()); err != nil {
			t.Fatalf("NewDirLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewDirLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewDirLoader(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "file.txt", "x")
		if _, err := NewDirLoader(filepath.Join(dir, "file.txt")); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestDirLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/custom.css", "body { color: red; }")
	writeAsset(t, dir, "templates/blog.html", "<main>{{ .Body }}</main>")

	loader, err := NewDirLoader(dir)
	if err != nil {
		t.Fatalf("NewDirLoader() error = %v", err)
	}

	css, err := loader.LoadStyle("custom")
	if err != nil || css != "body { color: red; }" {
		t.Errorf("LoadStyle() = %q, %v", css, err)
	}
	tmpl, err := loader.LoadTemplate("blog")
	if err != nil || tmpl != "<main>{{ .Body }}</main>" {
		t.Errorf("LoadTemplate() = %q, %v", tmpl, err)
	}
	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestDirLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeAsset(t, outside, "secret.css", "secret")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(base, "styles", "evil.css")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	loader, err := NewDirLoader(base)
	if err != nil {
		t.Fatalf("NewDirLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(evil) error = %v, want ErrPathTraversal", err)
	}
}

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("expected no custom loader")
		}
		if _, err := r.LoadStyle(DefaultStyleName); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})

	t.Run("custom overrides with fallback", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "styles/default.css", "custom-default")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("expected custom loader")
		}

		css, err := r.LoadStyle(DefaultStyleName)
		if err != nil || css != "custom-default" {
			t.Errorf("LoadStyle(default) = %q, %v, want custom override", css, err)
		}
		minimal, err := r.LoadStyle("minimal")
		if err != nil || minimal == "" {
			t.Errorf("LoadStyle(minimal) = %q, %v, want embedded fallback", minimal, err)
		}
		page, err := r.LoadTemplate(DefaultTemplateName)
		if err != nil || !strings.Contains(page, "{{ .Body }}") {
			t.Errorf("LoadTemplate(page) = %q, %v, want embedded fallback", page, err)
		}
	})

	t.Run("validation errors not masked", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if _, err := r.LoadStyle("a/b"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(a/b) error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}
