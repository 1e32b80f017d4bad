package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mediaAttrs lists the URL attributes rewritten per element.
var mediaAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.A:      "href",
	atom.Video:  "src",
	atom.Audio:  "src",
	atom.Iframe: "src",
}

// RewriteRelativePaths re-bases relative links and media sources in an HTML
// fragment written next to sourceDir so they still resolve from outputDir.
// The fragment is returned unchanged when either directory is empty or both
// are the same.
//
// Does NOT rewrite:
//   - URLs with a scheme, protocol-relative URLs and data URIs
//   - in-page anchors (#id)
//   - absolute paths
func RewriteRelativePaths(fragment, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return fragment, nil
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absSource == absOutput {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		rewriteNode(n, absSource, absOutput)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, sourceDir, outputDir string) {
	if n.Type == html.ElementNode {
		if name, ok := mediaAttrs[n.DataAtom]; ok {
			rewriteAttr(n, name, sourceDir, outputDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sourceDir, outputDir)
	}
}

func rewriteAttr(n *html.Node, name, sourceDir, outputDir string) {
	for i, attr := range n.Attr {
		if attr.Key != name || !isRelativePath(attr.Val) {
			continue
		}

		target, suffix := splitURLSuffix(attr.Val)
		rel, err := filepath.Rel(outputDir, filepath.Join(sourceDir, filepath.FromSlash(target)))
		if err != nil {
			continue
		}
		n.Attr[i].Val = filepath.ToSlash(rel) + suffix
	}
}

// splitURLSuffix separates a path from its query string and fragment.
func splitURLSuffix(val string) (path, suffix string) {
	if i := strings.IndexAny(val, "?#"); i >= 0 {
		return val[:i], val[i:]
	}
	return val, ""
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return false
	}
	if i := strings.IndexAny(path, ":/?#"); i >= 0 && path[i] == ':' {
		// scheme such as https:, mailto: or data:
		return false
	}
	return true
}
