package pipeline

import (
	"regexp"
	"strings"
)

const githubURL = "https://github.com/"

var (
	issueRefPattern     = regexp.MustCompile(`(^|\s)#(\d+)\b`)
	repoIssueRefPattern = regexp.MustCompile(`(^|[\s(])([\w.-]+/[\w.-]+)#(\d+)\b`)
)

// IssueLinks links #123 to baseURL+"123", or to the issues of githubRepo when
// baseURL is empty. Fully qualified owner/repo#123 references always link to
// GitHub.
func IssueLinks(md, githubRepo, baseURL string) string {
	if baseURL == "" && githubRepo != "" {
		baseURL = githubURL + githubRepo + "/issues/"
	}

	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, "#") {
			return text
		}
		if baseURL != "" {
			text = replaceSubmatch(issueRefPattern, text, func(g []string) string {
				return g[1] + `<a href="` + baseURL + g[2] + `">#` + g[2] + `</a>`
			})
		}
		return replaceSubmatch(repoIssueRefPattern, text, func(g []string) string {
			repo, num := g[2], g[3]
			return g[1] + `<a href="` + githubURL + repo + "/issues/" + num + `">` + repo + "#" + num + `</a>`
		})
	})
}
