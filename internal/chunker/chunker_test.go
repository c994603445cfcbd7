package chunker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/qcreport/internal/figure"
)

func records(reportType string, n int) []figure.Record {
	out := make([]figure.Record, n)
	for i := range out {
		name := fmt.Sprintf("sub-%02d_desc-%s_T1w.svg", i, reportType)
		out[i] = figure.Record{Path: name, Filename: name, ReportType: figure.Set(reportType)}
	}
	return out
}

func TestPartition_PagesOfFifty(t *testing.T) {
	res := Partition(records("brain", 120), Config{PerPage: 50})

	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, "brain", g.ReportType)
	assert.Equal(t, 120, g.Total)

	require.Len(t, g.Pages, 3)
	wantSizes := []int{50, 50, 20}
	for i, p := range g.Pages {
		assert.Equal(t, i, p.Chunk)
		assert.Equal(t, "brain", p.ReportType)
		assert.Len(t, p.Records, wantSizes[i], "chunk %d", i)
	}

	pos := 0
	for _, p := range g.Pages {
		for _, r := range p.Records {
			assert.Equal(t, pos, r.Idx)
			assert.Equal(t, pos/50, r.Chunk)
			assert.Equal(t, fmt.Sprintf("sub-%02d_desc-brain_T1w.svg", pos), r.Filename, "input order kept")
			pos++
		}
	}
}

func TestPartition_Unlimited(t *testing.T) {
	res := Partition(records("brain", 120), Config{PerPage: 0})

	require.Len(t, res.Groups, 1)
	require.Len(t, res.Groups[0].Pages, 1)
	page := res.Groups[0].Pages[0]
	assert.Equal(t, 0, page.Chunk)
	require.Len(t, page.Records, 120)
	assert.Equal(t, 119, page.Records[119].Idx)
	assert.Equal(t, 0, page.Records[119].Chunk)
}

func TestPartition_GroupLocalIdxSortedTypes(t *testing.T) {
	var in []figure.Record
	in = append(in, records("zeta", 2)...)
	in = append(in, records("alpha", 3)...)
	in = append(in, records("zeta", 1)...)

	res := Partition(in, DefaultConfig())

	require.Len(t, res.Groups, 2)
	assert.Equal(t, "alpha", res.Groups[0].ReportType)
	assert.Equal(t, "zeta", res.Groups[1].ReportType)
	assert.Equal(t, 3, res.Groups[1].Total)

	zeta := res.Groups[1].Pages[0].Records
	for i, r := range zeta {
		assert.Equal(t, i, r.Idx)
	}
}

func TestPartition_UnclassifiedSkipped(t *testing.T) {
	in := records("brain", 2)
	in = append(in, figure.Record{Path: "x.svg", Filename: "x.svg"})

	res := Partition(in, DefaultConfig())
	assert.Equal(t, 1, res.Unclassified)
	require.Len(t, res.Pages(), 1)
	assert.Len(t, res.Pages()[0].Records, 2)
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	in := records("brain", 3)
	in[2].Idx = 99

	Partition(in, Config{PerPage: 1})
	assert.Equal(t, 99, in[2].Idx)
}

func TestPartition_Empty(t *testing.T) {
	res := Partition(nil, DefaultConfig())
	assert.Empty(t, res.Groups)
	assert.Empty(t, res.Pages())
	assert.Zero(t, res.Unclassified)
}
