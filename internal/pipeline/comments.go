package pipeline

import "regexp"

var (
	htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

	// [//: # (note) anywhere in a line.
	bracketCommentPattern = regexp.MustCompile(`\[//:[ \t]*#[ \t]*\([^)]*\)\]`)

	// [//]: # (note) as a whole line, the link reference definition idiom.
	lineCommentPattern = regexp.MustCompile(`(?m)^\[//\]:[ \t]*#[ \t]*(?:\([^)\n]*\)|"[^"\n]*"|'[^'\n]*')[ \t]*$\n?`)
)

// RemoveComments strips HTML comments and markdown comment idioms, including
// their delimiters. Comment syntax inside inline code is kept.
func RemoveComments(md string) string {
	return mapProse(md, func(text string) string {
		text, saved := shieldMatches(inlineCodePattern, text)
		text = bracketCommentPattern.ReplaceAllString(text, "")
		text = lineCommentPattern.ReplaceAllString(text, "")
		return unshield(htmlCommentPattern.ReplaceAllString(text, ""), saved)
	})
}
