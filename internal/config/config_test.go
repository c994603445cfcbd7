package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.ReportsPerPage)
	assert.Equal(t, "../../sub-{subject}/figures", cfg.PathToFigures)
	assert.Equal(t, "group", cfg.GroupDir)
	assert.Equal(t, "svg-reportlet", cfg.Markers.Figure)
	assert.Equal(t, "run-title", cfg.Markers.RunTitle)
	assert.Equal(t, "h3", cfg.Markers.RunTitleTag)
	assert.Equal(t, "elem-caption", cfg.Markers.Caption)
	assert.Equal(t, "p", cfg.Markers.CaptionTag)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qcreport.yaml")
	yaml := `reports_per_page: 10
path_to_figures: ../../../derivatives/sub-{subject}/figures
markers:
  figure: reportlet-img
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("QCREPORT_REPORTS_PER_PAGE", "25")
	t.Setenv("QCREPORT_MARKERS__CAPTION", "caption")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.ReportsPerPage, "environment overrides file")
	assert.Equal(t, "../../../derivatives/sub-{subject}/figures", cfg.PathToFigures)
	assert.Equal(t, "reportlet-img", cfg.Markers.Figure)
	assert.Equal(t, "caption", cfg.Markers.Caption)
	assert.Equal(t, "run-title", cfg.Markers.RunTitle, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative page size", func(c *Config) { c.ReportsPerPage = -1 }},
		{"template without subject", func(c *Config) { c.PathToFigures = "../../figures" }},
		{"nested group dir", func(c *Config) { c.GroupDir = "a/b" }},
		{"empty figure marker", func(c *Config) { c.Markers.Figure = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}

	cfg := Default()
	cfg.ReportsPerPage = 0
	assert.NoError(t, cfg.Validate(), "zero means unlimited")
}

func TestFigureDir(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "../../sub-01/figures", cfg.FigureDir("01"))
}

func TestParserMarkers(t *testing.T) {
	m := Default().ParserMarkers()
	assert.Equal(t, "svg-reportlet", m.Figure)
	assert.Equal(t, "h3", m.RunTitleTag)
}
