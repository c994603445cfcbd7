package figure

import (
	"github.com/dgallion1/qcreport/internal/bids"
)

// Text is an optional string value. The zero value is unset.
type Text struct {
	Value string
	Valid bool
}

// Set returns a Text holding s.
func Set(s string) Text {
	return Text{Value: s, Valid: true}
}

// Record is one figure image found in a subject report.
type Record struct {
	Path     string        // Image reference as written in the report
	Filename string        // Basename of Path
	Entities bids.Entities // Parsed from Path

	RunTitle    Text // Nearest hierarchical section title
	ElemCaption Text // Caption paragraph for this figure
	ReportType  Text // Grouping category, see Classify

	// Assigned when records are paginated.
	Idx   int
	Chunk int
}

// Field names for the non-entity columns of a record.
const (
	FieldIdx         = "idx"
	FieldPath        = "path"
	FieldFilename    = "filename"
	FieldRunTitle    = "run_title"
	FieldElemCaption = "elem_caption"
	FieldReportType  = "report_type"
	FieldChunk       = "chunk"
)

// Field is one column of a flattened record. A nil Value means the record
// has no value for the column.
type Field struct {
	Key   string
	Value any
}

// Value returns the record's value for a column.
func (r Record) Value(key string) (any, bool) {
	switch key {
	case FieldIdx:
		return r.Idx, true
	case FieldPath:
		return r.Path, true
	case FieldFilename:
		return r.Filename, true
	case FieldRunTitle:
		return textValue(r.RunTitle)
	case FieldElemCaption:
		return textValue(r.ElemCaption)
	case FieldReportType:
		return textValue(r.ReportType)
	case FieldChunk:
		return r.Chunk, true
	}
	if e, ok := r.Entities.Lookup(key); ok {
		return e.JSONValue(), true
	}
	return nil, false
}

func textValue(t Text) (any, bool) {
	if !t.Valid {
		return nil, false
	}
	return t.Value, true
}

// Row flattens the record over the given columns.
func (r Record) Row(columns []string) []Field {
	row := make([]Field, 0, len(columns))
	for _, col := range columns {
		v, _ := r.Value(col)
		row = append(row, Field{Key: col, Value: v})
	}
	return row
}

// Columns returns the union of columns over records: idx first, then every
// entity present on at least one record in grammar order, then the fixed
// descriptive columns.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for _, e := range r.Entities {
			seen[e.Name] = true
		}
	}

	cols := []string{FieldIdx}
	for _, name := range bids.Names() {
		if seen[name] {
			cols = append(cols, name)
		}
	}
	return append(cols,
		FieldPath,
		FieldFilename,
		FieldRunTitle,
		FieldElemCaption,
		FieldReportType,
		FieldChunk,
	)
}
