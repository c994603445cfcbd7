// Package parser extracts figure records from subject-level QC reports.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"golang.org/x/net/html"

	"github.com/dgallion1/qcreport/internal/bids"
	"github.com/dgallion1/qcreport/internal/figure"
)

// ErrMissingSource is returned when a figure element has no image reference.
var ErrMissingSource = errors.New("figure element has neither src nor data")

// Markers is the class vocabulary that identifies report structure.
type Markers struct {
	Figure      string // Class on figure reference elements
	RunTitle    string // Class on hierarchical section titles
	RunTitleTag string
	Caption     string // Class on caption paragraphs
	CaptionTag  string
}

// DefaultMarkers matches the reports written by fMRIPrep.
func DefaultMarkers() Markers {
	return Markers{
		Figure:      "svg-reportlet",
		RunTitle:    "run-title",
		RunTitleTag: "h3",
		Caption:     "elem-caption",
		CaptionTag:  "p",
	}
}

// ReportParser turns one subject report into figure records.
type ReportParser struct {
	Markers Markers
}

// New returns a parser for the given markers.
func New(m Markers) *ReportParser {
	return &ReportParser{Markers: m}
}

// ParseFile parses the report at path.
func (p *ReportParser) ParseFile(path string) ([]figure.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	records, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse returns one record per figure element, in document order, with
// ReportType classified.
func (p *ReportParser) Parse(r io.Reader) ([]figure.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	figs := findAll(doc, "", p.Markers.Figure)
	records := make([]figure.Record, 0, len(figs))

	var st state
	for i, fd := range figs {
		var rec figure.Record
		rec, st, err = p.resolve(st, fd)
		if err != nil {
			return nil, fmt.Errorf("figure %d: %w", i, err)
		}
		records = append(records, rec)
	}

	figure.Classify(records)
	return records, nil
}

// state is carried through document order. runTitle is the last title
// resolved from a unique match.
type state struct {
	runTitle figure.Text
}

func (p *ReportParser) resolve(st state, fd *html.Node) (figure.Record, state, error) {
	src := attr(fd, "src")
	if src == "" {
		src = attr(fd, "data")
	}
	if src == "" {
		return figure.Record{}, st, ErrMissingSource
	}

	rec := figure.Record{
		Path:     src,
		Filename: path.Base(src),
		Entities: bids.Parse(src),
	}

	container := fd.Parent

	titles := unique(findAll(container, p.Markers.RunTitleTag, p.Markers.RunTitle))
	switch titles.Outcome {
	case Found:
		st.runTitle = figure.Set(titles.Text)
		rec.RunTitle = st.runTitle
	case NotFound, Ambiguous:
		rec.RunTitle = st.runTitle
	}

	captions := unique(findAll(container, p.Markers.CaptionTag, p.Markers.Caption))
	switch captions.Outcome {
	case Found:
		rec.ElemCaption = figure.Set(captions.Text)
	case NotFound, Ambiguous:
		if prev := precedingWithClass(fd, p.Markers.Caption); prev != nil {
			rec.ElemCaption = figure.Set(textContent(prev))
		}
	}

	return rec, st, nil
}
