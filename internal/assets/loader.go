package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// AssetLoader loads assets by bare name, without directory or extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Names of the built-in assets used when nothing else is configured.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "page"
)

// kind is one asset family.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

func (k kind) path(name string) string {
	return k.dir + "/" + name + k.ext
}

// readAsset reads the asset name of kind k from fsys.
func readAsset(fsys fs.FS, k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(fsys, k.path(name))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	default:
		return "", fmt.Errorf("%w: %s: %w", ErrAssetRead, k.path(name), err)
	}
}
