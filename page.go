package mdenrich

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-mdenrich/internal/dateutil"
)

// pageData is the value passed to page templates.
type pageData struct {
	Title       string
	Description string
	Lang        string
	Direction   string
	Date        string // human form, "" when unknown
	DateISO     string
	Tags        []string
	ReadingTime int
	CSS         template.CSS
	Body        template.HTML
}

var pageFuncs = template.FuncMap{
	"join": strings.Join,
}

func (c *Converter) loadPageTemplate() (*template.Template, error) {
	src, err := c.assetLoader.LoadTemplate(c.cfg.template)
	if err != nil {
		return nil, fmt.Errorf("%w: page template %q: %w", ErrInvalidOption, c.cfg.template, err)
	}
	tmpl, err := template.New(c.cfg.template).Funcs(pageFuncs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing page template %q: %w", ErrInvalidOption, c.cfg.template, err)
	}
	return tmpl, nil
}

// renderPage wraps res.HTML, table of contents included, into a standalone page.
func (c *Converter) renderPage(res *Result) (string, error) {
	lang, _ := res.Meta.Get("lang")
	data := pageData{
		Title:       res.Title,
		Description: res.Description,
		Lang:        lang,
		Direction:   res.Direction,
		Tags:        res.Tags,
		ReadingTime: res.ReadingTime,
		CSS:         template.CSS(escapeStyle(c.css)), // #nosec G203 -- trusted style assets
		Body:        template.HTML(res.HTML),          // #nosec G203 -- sanitized unless disabled by the caller
	}
	if data.Title == "" {
		data.Title = "Document"
	}
	if !res.Date.IsZero() {
		data.DateISO = res.Date.Format("2006-01-02")
		if human, err := dateutil.Format(res.Date, "long"); err == nil {
			data.Date = human
		}
	}

	var buf bytes.Buffer
	if err := c.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: executing page template: %w", ErrRender, err)
	}
	return buf.String(), nil
}

// escapeStyle keeps CSS from closing the surrounding <style> element.
func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
