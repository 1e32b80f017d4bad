package pipeline

import (
	"regexp"
	"strings"
)

// calloutMarker matches "[!TYPE] title" or "> [!TYPE] title" at line start.
var calloutMarker = regexp.MustCompile(`^(>[ \t]*)?\[!((?i:note|tip|warning|danger|quote))\][ \t]*(.*)$`)

// Callouts converts admonition blocks into note containers:
//
//	> [!WARNING] Careful
//	> Body text
//
// becomes a div with class "callout callout-warning" holding a title div
// and a content div. Plain blocks run until a blank line or the next marker;
// blockquote blocks run over the following ">" lines.
func Callouts(md string) string {
	return mapProse(md, convertCallouts)
}

func convertCallouts(text string) string {
	if !strings.Contains(text, "[!") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		m := calloutMarker.FindStringSubmatch(lines[i])
		if m == nil {
			out = append(out, lines[i])
			i++
			continue
		}

		quoted := m[1] != ""
		var body []string
		j := i + 1
		for ; j < len(lines); j++ {
			line := lines[j]
			if calloutMarker.MatchString(line) {
				break
			}
			if !quoted {
				if strings.TrimSpace(line) == "" {
					break
				}
				body = append(body, line)
				continue
			}

			rest, ok := strings.CutPrefix(line, ">")
			if !ok {
				break
			}
			if strings.TrimSpace(rest) == "" {
				// An empty quote line closes the callout and is consumed.
				j++
				break
			}
			body = append(body, strings.TrimPrefix(rest, " "))
		}

		out = append(out, renderCallout(m[2], m[3], strings.Join(body, "\n")))
		i = j
	}

	return strings.Join(out, "\n")
}

func renderCallout(kind, title, content string) string {
	kind = strings.ToLower(kind)
	header := strings.TrimSpace(title)
	if header == "" {
		header = kind
	}

	var b strings.Builder
	b.WriteString(`<div role="note" class="callout callout-`)
	b.WriteString(kind)
	b.WriteString(`"><div class="callout-title">`)
	b.WriteString(header)
	b.WriteString(`</div><div class="callout-content">`)
	b.WriteString(strings.TrimSpace(content))
	b.WriteString(`</div></div>`)
	return b.String()
}
