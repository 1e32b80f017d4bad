package pipeline

import (
	"regexp"
	"strings"
)

// maxUsernameLength is GitHub's username limit.
const maxUsernameLength = 39

var mentionPattern = regexp.MustCompile(`(^|\s)@([a-zA-Z0-9][a-zA-Z0-9-]*)`)

// Mentions links @username tokens that start a line or follow whitespace to
// baseURL+username. An empty baseURL links to GitHub profiles. Names longer
// than 39 characters are left as written.
func Mentions(md, baseURL string) string {
	if baseURL == "" {
		baseURL = githubURL
	}

	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, "@") {
			return text
		}
		return replaceSubmatch(mentionPattern, text, func(g []string) string {
			user := g[2]
			if len(user) > maxUsernameLength {
				return g[0]
			}
			return g[1] + `<a href="` + baseURL + user + `">@` + user + `</a>`
		})
	})
}
