package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// directionBlocks are the elements that receive a dir attribute.
const directionBlocks = "p, h1, h2, h3, h4, h5, h6, li, blockquote"

// Heading is a rendered heading with its anchor id.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// PostProcessed is the result of HTMLPostProcessor.Process.
type PostProcessed struct {
	HTML      string
	Headings  []Heading
	Direction Direction
}

// HTMLPostProcessor annotates sanitized HTML with text directions and
// collects the headings used by the table of contents.
type HTMLPostProcessor struct {
	MinDepth int // shallowest heading level collected, 1-6
	MaxDepth int // deepest heading level collected, 1-6
}

// Process parses fragment once, sets dir on every block element (plus the
// "rtl" class on right-to-left blocks), and returns the headings between
// MinDepth and MaxDepth that carry an id.
func (p *HTMLPostProcessor) Process(ctx context.Context, fragment string) (*PostProcessed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered html: %w", err)
	}

	doc.Find(directionBlocks).Each(func(_ int, s *goquery.Selection) {
		dir := DetectDirection(s.Text())
		s.SetAttr("dir", string(dir))
		if dir == DirectionRTL {
			s.AddClass("rtl")
		}
	})

	headings := p.collectHeadings(doc)

	body := doc.Find("body")
	out, err := body.Html()
	if err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}

	return &PostProcessed{
		HTML:      out,
		Headings:  headings,
		Direction: DetectDirection(body.Text()),
	}, nil
}

func (p *HTMLPostProcessor) collectHeadings(doc *goquery.Document) []Heading {
	minDepth, maxDepth := p.MinDepth, p.MaxDepth
	if minDepth < 1 {
		minDepth = 1
	}
	if maxDepth < 1 || maxDepth > 6 {
		maxDepth = 6
	}

	var headings []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		id, ok := s.Attr("id")
		if !ok || id == "" || level < minDepth || level > maxDepth {
			return
		}
		headings = append(headings, Heading{
			Level: level,
			ID:    id,
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return headings
}
