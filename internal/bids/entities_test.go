package bids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FigurePath(t *testing.T) {
	ents := Parse("sub-01/figures/sub-01_ses-pre_task-rest_run-2_space-MNI152NLin2009cAsym_desc-carpetplot_bold.svg")

	want := []struct {
		name, value string
	}{
		{"subject", "01"},
		{"session", "pre"},
		{"task", "rest"},
		{"run", "2"},
		{"space", "MNI152NLin2009cAsym"},
		{"desc", "carpetplot"},
		{"suffix", "bold"},
		{"extension", ".svg"},
	}
	require.Len(t, ents, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, ents[i].Name, "entity %d", i)
		assert.Equal(t, w.value, ents[i].Value, "entity %s", w.name)
	}
}

func TestParse_ReportPath(t *testing.T) {
	ents := Parse("/data/derivatives/fmriprep/sub-A12.html")

	sub, ok := ents.Get("subject")
	require.True(t, ok)
	assert.Equal(t, "A12", sub)

	_, ok = ents.Get("suffix")
	assert.False(t, ok, "a bare subject report has no suffix")

	ext, ok := ents.Get("extension")
	require.True(t, ok)
	assert.Equal(t, ".html", ext)
}

func TestParse_BareFilename(t *testing.T) {
	ents := Parse("sub-02_dseg.svg")

	sub, _ := ents.Get("subject")
	assert.Equal(t, "02", sub)
	suffix, _ := ents.Get("suffix")
	assert.Equal(t, "dseg", suffix)
	_, ok := ents.Get("desc")
	assert.False(t, ok)
}

func TestParse_SimilarKeysDoNotCollide(t *testing.T) {
	ents := Parse("sub-01_rec-norm_recording-card_mod-T1w_mode-image_T1w.svg")

	rec, _ := ents.Get("reconstruction")
	assert.Equal(t, "norm", rec)
	recording, _ := ents.Get("recording")
	assert.Equal(t, "card", recording)
	mod, _ := ents.Get("modality")
	assert.Equal(t, "T1w", mod)
	mode, _ := ents.Get("mode")
	assert.Equal(t, "image", mode)
}

func TestParse_Datatype(t *testing.T) {
	ents := Parse("sub-01/func/sub-01_task-rest_bold.nii.gz")

	dt, ok := ents.Get("datatype")
	require.True(t, ok)
	assert.Equal(t, "func", dt)
	ext, _ := ents.Get("extension")
	assert.Equal(t, ".nii.gz", ext)
}

func TestEntity_JSONValue(t *testing.T) {
	ents := Parse("sub-01_task-rest_run-03_echo-1_bold.svg")

	run, ok := ents.Lookup("run")
	require.True(t, ok)
	assert.Equal(t, 3, run.JSONValue())

	echo, _ := ents.Lookup("echo")
	assert.Equal(t, 1, echo.JSONValue())

	task, _ := ents.Lookup("task")
	assert.Equal(t, "rest", task.JSONValue())
}

func TestNames_GrammarOrder(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "subject", names[0])
	assert.Equal(t, "extension", names[len(names)-1])
	assert.Contains(t, names, "desc")
	assert.Contains(t, names, "space")
}
