package pipeline

import (
	"regexp"
	"strings"
)

var emojiPattern = regexp.MustCompile(`:([a-zA-Z0-9_+-]+):`)

// defaultEmojis is the built-in shortcode table. It is never modified;
// per-call overrides are merged into a copy.
var defaultEmojis = map[string]string{
	"smile":    "\U0001F604",
	"rocket":   "\U0001F680",
	"fire":     "\U0001F525",
	"star":     "⭐",
	"warning":  "⚠️",
	"info":     "ℹ️",
	"tada":     "\U0001F389",
	"+1":       "\U0001F44D",
	"-1":       "\U0001F44E",
	"heart":    "❤️",
	"thumbsup": "\U0001F44D",
	"check":    "✅",
	"x":        "❌",
	"eyes":     "\U0001F440",
	"bulb":     "\U0001F4A1",
	"sparkles": "✨",
	"bug":      "\U0001F41B",
	"memo":     "\U0001F4DD",
	"zap":      "⚡",
}

// DefaultEmojis returns a copy of the built-in shortcode table.
func DefaultEmojis() map[string]string {
	return MergeEmojis(nil)
}

// MergeEmojis returns the default table with overrides applied on top.
// Override names are matched case-insensitively.
func MergeEmojis(overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaultEmojis)+len(overrides))
	for name, glyph := range defaultEmojis {
		merged[name] = glyph
	}
	for name, glyph := range overrides {
		merged[strings.ToLower(name)] = glyph
	}
	return merged
}

// Emojis replaces known :shortcode: tokens with their glyph. Unknown
// shortcodes are left as written.
func Emojis(md string, overrides map[string]string) string {
	table := MergeEmojis(overrides)
	return mapShielded(md, func(text string) string {
		if strings.Count(text, ":") < 2 {
			return text
		}
		return replaceSubmatch(emojiPattern, text, func(g []string) string {
			if glyph, ok := table[strings.ToLower(g[1])]; ok {
				return glyph
			}
			return g[0]
		})
	})
}
