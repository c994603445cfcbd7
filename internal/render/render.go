// Package render turns paginated figure records into consolidated review pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dgallion1/qcreport/internal/chunker"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexFile is the name of the page listing every consolidated page.
const IndexFile = "index.html"

// FileName returns the consolidated page name for a report type and chunk.
func FileName(reportType string, chunk int) string {
	return fmt.Sprintf("consolidated_%s_%03d.html", reportType, chunk)
}

// Renderer holds the parsed page templates and the reviewer instructions
// shared by every page.
type Renderer struct {
	tmpl         *template.Template
	instructions template.HTML
}

// New parses the embedded templates. instructions is Markdown; empty input
// leaves pages without an instructions block.
func New(instructions []byte) (*Renderer, error) {
	tmpl, err := template.New("qcreport").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	html, err := Instructions(instructions)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, instructions: html}, nil
}

// Link points at one page of a report type.
type Link struct {
	Number  int // One-based
	Href    string
	Current bool
}

type pageData struct {
	ReportType   string
	Chunk        int
	PageNumber   int
	PageCount    int
	Prev, Next   string
	Links        []Link
	Instructions template.HTML
	Snippets     []template.HTML
	Count        int
	Total        int
}

func links(g chunker.Group, current int) []Link {
	out := make([]Link, len(g.Pages))
	for i, p := range g.Pages {
		out[i] = Link{
			Number:  i + 1,
			Href:    FileName(g.ReportType, p.Chunk),
			Current: p.Chunk == current,
		}
	}
	return out
}

// Page writes one consolidated page: head, navigation, reviewer initials,
// one snippet per record in index order, and footer.
func (r *Renderer) Page(w io.Writer, g chunker.Group, p chunker.Page, columns []string) error {
	data := pageData{
		ReportType:   p.ReportType,
		Chunk:        p.Chunk,
		PageCount:    len(g.Pages),
		Links:        links(g, p.Chunk),
		Instructions: r.instructions,
		Count:        len(p.Records),
		Total:        g.Total,
	}
	for i, l := range data.Links {
		if !l.Current {
			continue
		}
		data.PageNumber = l.Number
		if i > 0 {
			data.Prev = data.Links[i-1].Href
		}
		if i < len(data.Links)-1 {
			data.Next = data.Links[i+1].Href
		}
	}

	for _, rec := range p.Records {
		s, err := r.Snippet(rec, columns)
		if err != nil {
			return err
		}
		data.Snippets = append(data.Snippets, s)
	}

	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page %s: %w", FileName(p.ReportType, p.Chunk), err)
	}
	return nil
}

type indexGroup struct {
	ReportType string
	Total      int
	Links      []Link
}

type indexData struct {
	Instructions template.HTML
	Groups       []indexGroup
	Unclassified int
}

// Index writes the page listing every report type and its pages.
func (r *Renderer) Index(w io.Writer, res chunker.Result) error {
	data := indexData{Instructions: r.instructions, Unclassified: res.Unclassified}
	for _, g := range res.Groups {
		data.Groups = append(data.Groups, indexGroup{
			ReportType: g.ReportType,
			Total:      g.Total,
			Links:      links(g, -1),
		})
	}
	if err := r.tmpl.ExecuteTemplate(w, "index", data); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}
