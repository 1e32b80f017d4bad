package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Options configures the enrichment stages. The zero value disables every
// optional stage; use DefaultOptions for the usual configuration.
type Options struct {
	EnableEmojis          bool
	EnableCommentsRemoval bool
	EnableTags            bool
	EnableInternalLinks   bool
	EnableEmbeds          bool
	EnableImageSizes      bool

	GitHubRepo           string            // owner/repo used for bare #123 links
	IssueBaseURL         string            // overrides the GitHub issues URL
	MentionsBaseURL      string            // defaults to https://github.com/
	TagsBaseURL          string            // empty renders tags as spans
	SpoilerClassName     string            // defaults to DefaultSpoilerClass
	EmojiOverrides       map[string]string // merged over the default table
	InternalLinkBasePath string            // prefix for wiki-link hrefs
}

// DefaultOptions enables every optional stage.
func DefaultOptions() Options {
	return Options{
		EnableEmojis:          true,
		EnableCommentsRemoval: true,
		EnableTags:            true,
		EnableInternalLinks:   true,
		EnableEmbeds:          true,
		EnableImageSizes:      true,
	}
}

// Stage is one named rewrite of the enrichment pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Stages returns the enabled stages in execution order.
func Stages(opts Options) []Stage {
	stages := []Stage{
		{Name: "callouts", Apply: Callouts},
		{Name: "footnotes", Apply: Footnotes},
		{Name: "inline-extras", Apply: InlineExtras},
		{Name: "definition-lists", Apply: DefinitionLists},
		{Name: "abbreviations", Apply: Abbreviations},
	}
	if opts.EnableEmojis {
		overrides := opts.EmojiOverrides
		stages = append(stages, Stage{Name: "emojis", Apply: func(s string) string {
			return Emojis(s, overrides)
		}})
	}
	stages = append(stages, Stage{Name: "spoilers", Apply: func(s string) string {
		return Spoilers(s, opts.SpoilerClassName)
	}})
	if opts.EnableCommentsRemoval {
		stages = append(stages, Stage{Name: "comments", Apply: RemoveComments})
	}
	if opts.EnableTags {
		stages = append(stages, Stage{Name: "hashtags", Apply: func(s string) string {
			return Hashtags(s, opts.TagsBaseURL)
		}})
	}
	stages = append(stages,
		Stage{Name: "issue-links", Apply: func(s string) string {
			return IssueLinks(s, opts.GitHubRepo, opts.IssueBaseURL)
		}},
		Stage{Name: "mentions", Apply: func(s string) string {
			return Mentions(s, opts.MentionsBaseURL)
		}},
	)
	if opts.EnableInternalLinks {
		stages = append(stages, Stage{Name: "wiki-links", Apply: func(s string) string {
			return WikiLinks(s, opts.InternalLinkBasePath)
		}})
	}
	if opts.EnableEmbeds {
		stages = append(stages, Stage{Name: "embeds", Apply: Embeds})
	}
	if opts.EnableImageSizes {
		stages = append(stages, Stage{Name: "sized-images", Apply: SizedImages})
	}
	return stages
}

// Compose runs every enabled stage over body in order.
func Compose(body string, opts Options) string {
	for _, st := range Stages(opts) {
		body = st.Apply(body)
	}
	return body
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Enricher runs the enrichment stages as a MarkdownPreprocessor.
type Enricher struct {
	Options Options

	// OnStage, when set, is called after each stage completes.
	OnStage func(name string)
}

// NewEnricher returns an Enricher using opts.
func NewEnricher(opts Options) *Enricher {
	return &Enricher{Options: opts}
}

// PreprocessMarkdown normalizes line endings and applies the stages.
// Cancellation is checked between stages; a cancelled context returns the
// content as enriched so far.
func (e *Enricher) PreprocessMarkdown(ctx context.Context, content string) string {
	content = NormalizeLineEndings(content)
	for _, st := range Stages(e.Options) {
		if ctx.Err() != nil {
			return content
		}
		content = st.Apply(content)
		if e.OnStage != nil {
			e.OnStage(st.Name)
		}
	}
	return content
}
