package assets

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// Compile-time interface check.
var _ AssetLoader = EmbeddedLoader{}

// NewEmbeddedLoader returns the built-in asset loader.
func NewEmbeddedLoader() EmbeddedLoader {
	return EmbeddedLoader{}
}

// LoadStyle returns the built-in styles/{name}.css.
func (EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(builtin, styleKind, name)
}

// LoadTemplate returns the built-in templates/{name}.html.
func (EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(builtin, templateKind, name)
}

// StyleNames lists the built-in styles, sorted.
func StyleNames() []string {
	matches, err := fs.Glob(builtin, styleKind.path("*"))
	if err != nil {
		return nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(path.Base(m), styleKind.ext)
	}
	return names
}
