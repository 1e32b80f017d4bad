package pipeline

import "strings"

// DefinitionLists turns a term line followed by ": definition" lines into a
// single-line <dl> element:
//
//	Go
//	: A programming language
//	: A board game
//
// becomes <dl><dt>Go</dt><dd>A programming language</dd><dd>A board game</dd></dl>.
func DefinitionLists(md string) string {
	return mapProse(md, convertDefinitionLists)
}

func convertDefinitionLists(text string) string {
	if !strings.Contains(text, "\n:") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		term := lines[i]
		if strings.TrimSpace(term) == "" || isDefinitionLine(term) ||
			i+1 >= len(lines) || !isDefinitionLine(lines[i+1]) {
			out = append(out, term)
			continue
		}

		var b strings.Builder
		b.WriteString("<dl><dt>")
		b.WriteString(strings.TrimSpace(term))
		b.WriteString("</dt>")
		for i+1 < len(lines) && isDefinitionLine(lines[i+1]) {
			i++
			if def := strings.TrimSpace(lines[i][1:]); def != "" {
				b.WriteString("<dd>")
				b.WriteString(def)
				b.WriteString("</dd>")
			}
		}
		b.WriteString("</dl>")
		out = append(out, b.String())
	}

	return strings.Join(out, "\n")
}

// isDefinitionLine reports whether line starts with ':' and whitespace.
func isDefinitionLine(line string) bool {
	return len(line) >= 2 && line[0] == ':' && (line[1] == ' ' || line[1] == '\t')
}
