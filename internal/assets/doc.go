// Package assets loads the stylesheets and page templates used for
// standalone HTML pages.
//
// Assets are addressed by bare name and live in two families:
//
//	styles/{name}.css
//	templates/{name}.html
//
// The built-in set is embedded in the binary. A directory with the same
// layout can override any single asset; AssetResolver asks that directory
// first and falls back to the built-in copy only when the asset is missing
// there. Directory reads go through os.Root, so neither names nor symlinks
// can reach files outside the directory.
package assets
