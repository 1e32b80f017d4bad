package mdenrich

import (
	"fmt"
	"time"

	"github.com/alnah/go-mdenrich/internal/frontmatter"
	"github.com/alnah/go-mdenrich/internal/pipeline"
)

// MaxInputSize is the default upper bound on markdown input, in bytes.
const MaxInputSize = 10 << 20

// TOC depth bounds and defaults.
const (
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 3
	minTOCDepth        = 1
	maxTOCDepth        = 6
)

// Text directions reported in Result.Direction.
const (
	DirectionLTR  = string(pipeline.DirectionLTR)
	DirectionRTL  = string(pipeline.DirectionRTL)
	DirectionAuto = string(pipeline.DirectionAuto)
)

// EnrichOptions selects and configures the enrichment stages.
type EnrichOptions = pipeline.Options

// DefaultEnrichOptions enables every optional enrichment stage.
func DefaultEnrichOptions() EnrichOptions {
	return pipeline.DefaultOptions()
}

// Input is one document to render.
type Input struct {
	Markdown string // document text, optionally starting with a --- frontmatter block

	// SourceDir and OutputDir, when both set and different, re-base relative
	// src and href attributes so links keep working from the output location.
	SourceDir string
	OutputDir string

	Standalone bool // wrap the fragment in a full HTML page
	TOC        *TOC // nil = no table of contents in the HTML
}

// TOC configures the table of contents.
type TOC struct {
	Title    string // empty = no title above the list
	Numbered bool   // prefix entries with 1., 1.1., ...
	MinDepth int    // 1-6, 0 = DefaultTOCMinDepth
	MaxDepth int    // 1-6, 0 = DefaultTOCMaxDepth
}

// Validate checks depth bounds. A nil TOC is valid.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < minTOCDepth || minDepth > maxTOCDepth {
		return fmt.Errorf("%w: min depth %d (must be %d-%d)", ErrInvalidTOCDepth, minDepth, minTOCDepth, maxTOCDepth)
	}
	if maxDepth < minTOCDepth || maxDepth > maxTOCDepth {
		return fmt.Errorf("%w: max depth %d (must be %d-%d)", ErrInvalidTOCDepth, maxDepth, minTOCDepth, maxTOCDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: min depth %d > max depth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Heading is a rendered heading with its anchor id.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Metadata is the parsed frontmatter, in document order.
type Metadata struct {
	data *frontmatter.Data
}

// Keys returns the field names in first-seen order.
func (m Metadata) Keys() []string { return m.data.Keys() }

// Len returns the number of fields.
func (m Metadata) Len() int { return m.data.Len() }

// Get returns the value of key. Sequences are joined with ", ".
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.data.Get(key)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Values returns the items of a sequence, or a one-element slice for a
// non-empty scalar.
func (m Metadata) Values(key string) []string { return m.data.Strings(key) }

// IsSequence reports whether key holds a list.
func (m Metadata) IsSequence(key string) bool {
	v, ok := m.data.Get(key)
	return ok && v.IsSequence()
}

// Map returns the fields as string and []string values.
func (m Metadata) Map() map[string]any {
	if m.data == nil {
		return map[string]any{}
	}
	return m.data.Map()
}

// Result is a rendered document.
type Result struct {
	Meta        Metadata
	Title       string    // frontmatter title, else the first h1
	Description string    // frontmatter description, else summary
	Date        time.Time // zero when absent or unparsable
	Tags        []string

	Enriched    string    // markdown body after the enrichment stages
	HTML        string    // sanitized fragment, with the TOC when requested
	Page        string    // full HTML page, only with Input.Standalone
	TOC         string    // rendered table of contents, "" without headings
	Headings    []Heading // every heading carrying an id, h1-h6
	ReadingTime int       // minutes, at least 1
	Direction   string    // DirectionLTR, DirectionRTL or DirectionAuto
}

// Option configures a Converter.
type Option func(*converterConfig)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second
