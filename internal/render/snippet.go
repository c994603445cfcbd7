package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/dgallion1/qcreport/internal/figure"
)

type snippetData struct {
	Idx      int
	Stem     string
	Identity template.JS
	Header   []figure.Field
	Path     string
}

var unsafeID = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// stem is the filename up to its first dot, made safe for an element id.
func stem(filename string) string {
	s, _, _ := strings.Cut(filename, ".")
	return unsafeID.ReplaceAllString(s, "-")
}

// Snippet renders one figure record as a self-contained review block.
// Idx, Filename and Path must be set.
func (r *Renderer) Snippet(rec figure.Record, columns []string) (template.HTML, error) {
	row := rec.Row(columns)

	identity, err := MarshalFields(Identity(row))
	if err != nil {
		return "", fmt.Errorf("encode record %d: %w", rec.Idx, err)
	}

	var buf strings.Builder
	err = r.tmpl.ExecuteTemplate(&buf, "snippet", snippetData{
		Idx:      rec.Idx,
		Stem:     stem(rec.Filename),
		Identity: template.JS(identity),
		Header:   Header(row),
		Path:     rec.Path,
	})
	if err != nil {
		return "", fmt.Errorf("render snippet %d: %w", rec.Idx, err)
	}
	return template.HTML(buf.String()), nil
}
