package render

import (
	"bytes"
	"encoding/json"

	"github.com/dgallion1/qcreport/internal/figure"
)

// FieldSet is a named set of record columns.
type FieldSet map[string]struct{}

func newFieldSet(keys ...string) FieldSet {
	s := make(FieldSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// With returns a new set holding s and keys.
func (s FieldSet) With(keys ...string) FieldSet {
	out := make(FieldSet, len(s)+len(keys))
	for k := range s {
		out[k] = struct{}{}
	}
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// Has reports whether key is in the set.
func (s FieldSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

var (
	// IdentityExcluded are the columns left out of the embedded JSON record.
	IdentityExcluded = newFieldSet(
		figure.FieldPath,
		figure.FieldRunTitle,
		figure.FieldElemCaption,
		"extension",
		figure.FieldFilename,
	)

	// HeaderExcluded are the columns left out of the visible header line.
	HeaderExcluded = IdentityExcluded.With(
		"desc",
		figure.FieldReportType,
		figure.FieldIdx,
		figure.FieldChunk,
	)
)

// SeenKey is the client-side flag recording whether a figure was scrolled into view.
const SeenKey = "been_on_screen"

// Identity returns the fields of row that go into the embedded JSON record,
// followed by the seen flag set to false.
func Identity(row []figure.Field) []figure.Field {
	out := make([]figure.Field, 0, len(row)+1)
	for _, f := range row {
		if !IdentityExcluded.Has(f.Key) {
			out = append(out, f)
		}
	}
	return append(out, figure.Field{Key: SeenKey, Value: false})
}

// Header returns the non-null fields of row shown in the snippet header.
func Header(row []figure.Field) []figure.Field {
	var out []figure.Field
	for _, f := range row {
		if f.Value != nil && !HeaderExcluded.Has(f.Key) {
			out = append(out, f)
		}
	}
	return out
}

// MarshalFields encodes fields as a JSON object, keeping their order.
func MarshalFields(fields []figure.Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
