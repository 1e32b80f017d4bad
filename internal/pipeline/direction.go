package pipeline

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Direction is a text direction value for the HTML dir attribute.
type Direction string

const (
	DirectionLTR  Direction = "ltr"
	DirectionRTL  Direction = "rtl"
	DirectionAuto Direction = "auto"
)

// isRTLRune covers Hebrew, Arabic, Syriac, Thaana, NKo, the RTL marks and
// the Hebrew and Arabic presentation forms.
func isRTLRune(r rune) bool {
	switch {
	case r >= 0x0591 && r <= 0x07FF:
		return true
	case r == 0x200F, r == 0x202B, r == 0x202E:
		return true
	case r >= 0xFB1D && r <= 0xFDFD:
		return true
	case r >= 0xFE70 && r <= 0xFEFC:
		return true
	}
	return false
}

// isLTRRune covers ASCII letters and the Latin-1 and Latin Extended letters.
func isLTRRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0x00C0 && r <= 0x00D6, r >= 0x00D8 && r <= 0x00F6, r >= 0x00F8 && r <= 0x02B8:
		return true
	}
	return false
}

// IsRTL reports whether text holds more right-to-left than left-to-right
// letters.
func IsRTL(text string) bool {
	rtl, ltr := 0, 0
	for _, r := range text {
		switch {
		case isRTLRune(r):
			rtl++
		case isLTRRune(r):
			ltr++
		}
	}
	return rtl > ltr
}

// DetectDirection decides the direction from the first character when it
// is strongly directional, and from the letter majority otherwise. Blank
// text is DirectionAuto.
func DetectDirection(text string) Direction {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DirectionAuto
	}

	first, _ := utf8.DecodeRuneInString(trimmed)
	switch {
	case isRTLRune(first):
		return DirectionRTL
	case first < utf8.RuneSelf && isLTRRune(first):
		return DirectionLTR
	case IsRTL(trimmed):
		return DirectionRTL
	default:
		return DirectionLTR
	}
}

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// ReadingTime estimates the minutes needed to read text, never less than one.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	return max(1, int(math.Round(float64(words)/WordsPerMinute)))
}
