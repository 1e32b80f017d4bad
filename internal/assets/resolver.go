package assets

// AssetResolver asks its loaders in order and moves on only when an asset
// is missing. Invalid names and read errors stop the lookup.
type AssetResolver struct {
	chain []AssetLoader
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver returns a resolver over the built-in assets, preceded
// by customBasePath when it is not empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		dir, err := NewDirLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, dir)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the first stylesheet found for name.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first page template found for name.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// HasCustomLoader reports whether a custom directory is consulted.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		if content, err = load(l); err == nil || !isNotFound(err) {
			return content, err
		}
	}
	return "", err
}
