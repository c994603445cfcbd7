package figure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/qcreport/internal/bids"
)

func TestColumns_UnionInGrammarOrder(t *testing.T) {
	records := []Record{
		{Entities: bids.Parse("sub-01_desc-brain_T1w.svg")},
		{Entities: bids.Parse("sub-01_task-rest_desc-carpet_bold.svg")},
	}

	cols := Columns(records)
	assert.Equal(t, []string{
		"idx", "subject", "task", "desc", "suffix", "extension",
		"path", "filename", "run_title", "elem_caption", "report_type", "chunk",
	}, cols)
}

func TestRecord_RowFillsMissingWithNil(t *testing.T) {
	r := Record{
		Path:       "sub-01/figures/sub-01_desc-brain_T1w.svg",
		Filename:   "sub-01_desc-brain_T1w.svg",
		Entities:   bids.Parse("sub-01_desc-brain_T1w.svg"),
		RunTitle:   Set("Anatomical"),
		ReportType: Set("brain"),
		Idx:        4,
	}

	row := r.Row([]string{"idx", "subject", "task", "run_title", "elem_caption", "report_type"})
	require.Len(t, row, 6)
	assert.Equal(t, Field{"idx", 4}, row[0])
	assert.Equal(t, Field{"subject", "01"}, row[1])
	assert.Equal(t, Field{"task", nil}, row[2])
	assert.Equal(t, Field{"run_title", "Anatomical"}, row[3])
	assert.Equal(t, Field{"elem_caption", nil}, row[4])
	assert.Equal(t, Field{"report_type", "brain"}, row[5])
}

func TestRecord_ValueTypedEntities(t *testing.T) {
	r := Record{Entities: bids.Parse("sub-01_task-rest_run-2_bold.svg")}

	v, ok := r.Value("run")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = r.Value("session")
	assert.False(t, ok)
}
