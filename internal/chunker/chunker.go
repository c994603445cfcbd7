// Package chunker groups figure records by report type and splits each group
// into pages.
package chunker

import (
	"slices"

	"github.com/dgallion1/qcreport/internal/figure"
)

// Config controls pagination.
type Config struct {
	PerPage int // Records per page. Zero or less puts each group on one page.
}

// DefaultConfig returns the page size fMRIPrep reviewers are used to.
func DefaultConfig() Config {
	return Config{PerPage: 50}
}

// Page is one consolidated output unit.
type Page struct {
	ReportType string
	Chunk      int
	Records    []figure.Record
}

// Group is every page of one report type.
type Group struct {
	ReportType string
	Total      int
	Pages      []Page
}

// Result of partitioning a merged table.
type Result struct {
	Groups       []Group
	Unclassified int // Records without a report type, left off every page
}

// Pages flattens all groups in (report type, chunk) order.
func (r Result) Pages() []Page {
	var pages []Page
	for _, g := range r.Groups {
		pages = append(pages, g.Pages...)
	}
	return pages
}

// Partition groups records by report type, sorted by type name. Within a group,
// records keep their input order and get a group-local idx starting at zero
// and chunk = idx / PerPage.
func Partition(records []figure.Record, cfg Config) Result {
	var res Result
	byType := make(map[string][]figure.Record)
	var types []string

	for _, r := range records {
		if !r.ReportType.Valid {
			res.Unclassified++
			continue
		}
		rt := r.ReportType.Value
		if _, ok := byType[rt]; !ok {
			types = append(types, rt)
		}
		byType[rt] = append(byType[rt], r)
	}
	slices.Sort(types)

	for _, rt := range types {
		res.Groups = append(res.Groups, paginate(rt, byType[rt], cfg.PerPage))
	}
	return res
}

func paginate(reportType string, records []figure.Record, perPage int) Group {
	g := Group{ReportType: reportType, Total: len(records)}

	for idx := range records {
		chunk := 0
		if perPage > 0 {
			chunk = idx / perPage
		}
		records[idx].Idx = idx
		records[idx].Chunk = chunk

		if len(g.Pages) == 0 || g.Pages[len(g.Pages)-1].Chunk != chunk {
			g.Pages = append(g.Pages, Page{ReportType: reportType, Chunk: chunk})
		}
		last := &g.Pages[len(g.Pages)-1]
		last.Records = append(last.Records, records[idx])
	}
	return g
}
