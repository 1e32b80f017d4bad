package pipeline

import (
	"html"
	"path"
	"regexp"
	"strings"
)

// MediaKind classifies an embedded file by extension.
type MediaKind int

const (
	MediaLink MediaKind = iota
	MediaImage
	MediaVideo
	MediaAudio
)

var embedPattern = regexp.MustCompile(`!\[\[([^\]|\n]+)(?:\|([^\]\n]+))?\]\]`)

var mediaExtensions = map[string]MediaKind{
	".png":  MediaImage,
	".jpg":  MediaImage,
	".jpeg": MediaImage,
	".gif":  MediaImage,
	".webp": MediaImage,
	".svg":  MediaImage,
	".avif": MediaImage,
	".mp4":  MediaVideo,
	".webm": MediaVideo,
	".ogg":  MediaVideo,
	".mov":  MediaVideo,
	".mp3":  MediaAudio,
	".wav":  MediaAudio,
	".flac": MediaAudio,
	".m4a":  MediaAudio,
	".aac":  MediaAudio,
}

// ClassifyMedia returns the media kind for a file name, ignoring case.
func ClassifyMedia(name string) MediaKind {
	return mediaExtensions[strings.ToLower(path.Ext(name))]
}

// Embeds rewrites ![[file.ext|option]] into <img>, <video>, <audio> or a
// plain link depending on the extension. A numeric option sets the width
// of images and videos; any other option becomes the image alt text.
func Embeds(md string) string {
	return mapShielded(md, func(text string) string {
		if !strings.Contains(text, "![[") {
			return text
		}
		return replaceSubmatch(embedPattern, text, func(g []string) string {
			return renderEmbed(strings.TrimSpace(g[1]), strings.TrimSpace(g[2]))
		})
	})
}

func renderEmbed(src, option string) string {
	attrSrc := html.EscapeString(src)
	width := ""
	if isDigits(option) {
		width = ` width="` + option + `"`
	}

	switch ClassifyMedia(src) {
	case MediaImage:
		alt := ""
		if width == "" {
			alt = html.EscapeString(option)
		}
		return `<img src="` + attrSrc + `"` + width + ` alt="` + alt + `" />`
	case MediaVideo:
		return `<video controls src="` + attrSrc + `"` + width + `></video>`
	case MediaAudio:
		return `<audio controls src="` + attrSrc + `"></audio>`
	default:
		return `<a href="` + attrSrc + `">` + html.EscapeString(src) + `</a>`
	}
}
