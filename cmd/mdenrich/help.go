package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdenrich <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render markdown files to HTML or enriched markdown")
	fmt.Fprintln(w, "  meta        Print frontmatter, reading time and direction")
	fmt.Fprintln(w, "  slug        Print heading anchor ids for text")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdenrich help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdenrich render [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Enrich markdown and render it to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory or quoted glob such as 'docs/**/*.md'")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory (default: next to source)")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --pattern <glob>         Glob inside input directories (default **/*.md)")
	fmt.Fprintln(w, "      --format <f>             Output format: html, md")
	fmt.Fprintln(w, "      --standalone             Write full HTML pages")
	fmt.Fprintln(w, "  -t, --timeout <d>            Per-document timeout (e.g. 30s)")
	fmt.Fprintln(w, "      --env-file <path>        Load MDENRICH_* variables from a dotenv file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Enrichment:")
	fmt.Fprintln(w, "      --github-repo <o/r>      Link bare #123 to owner/repo")
	fmt.Fprintln(w, "      --issue-base-url <u>     Base URL for issue links")
	fmt.Fprintln(w, "      --mentions-base-url <u>  Base URL for @mentions")
	fmt.Fprintln(w, "      --tags-base-url <u>      Base URL for #hashtags")
	fmt.Fprintln(w, "      --spoiler-class <s>      CSS class for ||spoilers||")
	fmt.Fprintln(w, "      --link-base-path <p>     Path prefix for [[wiki links]]")
	fmt.Fprintln(w, "      --emoji <name=glyph>     Emoji override (repeatable)")
	fmt.Fprintln(w, "      --no-emojis              Keep :shortcodes: as text")
	fmt.Fprintln(w, "      --no-comments-removal    Keep comments")
	fmt.Fprintln(w, "      --no-tags                Disable #hashtag links")
	fmt.Fprintln(w, "      --no-internal-links      Disable [[wiki links]]")
	fmt.Fprintln(w, "      --no-embeds              Disable ![[media]] embeds")
	fmt.Fprintln(w, "      --no-image-sizes         Disable image =WxH sizes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --style <name|path>      Page style: default, minimal, or a CSS file")
	fmt.Fprintln(w, "      --asset-path <dir>       Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --highlight-style <s>    Code highlight style (default github)")
	fmt.Fprintln(w, "      --hard-wraps             Render single newlines as <br>")
	fmt.Fprintln(w, "      --no-sanitize            Skip HTML sanitization (trusted input only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                    Prepend a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>          TOC heading text")
	fmt.Fprintln(w, "      --toc-numbered           Number TOC entries")
	fmt.Fprintln(w, "      --toc-min-depth <n>      Min heading depth (1-6, default 1)")
	fmt.Fprintln(w, "      --toc-max-depth <n>      Max heading depth (1-6, default 3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cache and Watch:")
	fmt.Fprintln(w, "      --cache                  Reuse unchanged renders")
	fmt.Fprintln(w, "      --no-cache               Disable the render cache")
	fmt.Fprintln(w, "      --cache-path <file>      Cache file (default: user cache directory)")
	fmt.Fprintln(w, "      --watch                  Re-render when inputs change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
}

// printMetaUsage prints usage for the meta command.
func printMetaUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdenrich meta <file> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the frontmatter of a markdown file with its reading time")
	fmt.Fprintln(w, "and text direction, as YAML (default) or JSON.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "meta":
		printMetaUsage(env.Stdout)
	case "slug":
		fmt.Fprintln(env.Stdout, "Usage: mdenrich slug <text...>")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the anchor id generated for each argument, in order.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdenrich version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdenrich help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
