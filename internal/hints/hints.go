// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config or creating a config under the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdenrich") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInputTooLarge returns a hint for documents over the size limit.
func ForInputTooLarge() string {
	return format("split the document or render it with the library and a larger limit")
}

// ForTimeout returns a hint about increasing the render timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForCacheLocked returns a hint when another process holds the render cache.
func ForCacheLocked() string {
	return format("another mdenrich may be running; use --no-cache or a different cache path")
}

// ForWatchLimit returns a hint when the OS refuses more file watches.
func ForWatchLimit() string {
	if runtime.GOOS == "linux" {
		return format("raise fs.inotify.max_user_watches or watch a smaller directory")
	}
	return format("watch a smaller directory")
}

// ForNoInputFiles returns a hint when discovery matched nothing.
func ForNoInputFiles(pattern string) string {
	if pattern == "" {
		return format("pass a .md file, a directory or a glob such as 'posts/**/*.md'")
	}
	return format("no file matched " + pattern + "; quote globs so the shell does not expand them")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
