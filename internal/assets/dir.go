package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirLoader serves assets from a directory on disk.
type DirLoader struct {
	base string
}

// Compile-time interface check.
var _ AssetLoader = (*DirLoader)(nil)

// NewDirLoader checks that basePath is an openable directory.
func NewDirLoader(basePath string) (*DirLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	_ = root.Close()

	return &DirLoader{base: abs}, nil
}

// LoadStyle reads {base}/styles/{name}.css.
func (d *DirLoader) LoadStyle(name string) (string, error) {
	return d.load(styleKind, name)
}

// LoadTemplate reads {base}/templates/{name}.html.
func (d *DirLoader) LoadTemplate(name string) (string, error) {
	return d.load(templateKind, name)
}

func (d *DirLoader) load(k kind, name string) (string, error) {
	root, err := os.OpenRoot(d.base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	defer root.Close()

	content, err := readAsset(root.FS(), k, name)
	if errors.Is(err, ErrAssetRead) {
		// os.Root refuses links that leave base; name that case.
		if info, lerr := root.Lstat(k.path(name)); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
			return "", fmt.Errorf("%w: %s", ErrPathTraversal, k.path(name))
		}
	}
	return content, err
}
