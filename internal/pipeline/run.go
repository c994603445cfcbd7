package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFile is written to the group directory after a successful run.
const ManifestFile = "qcreport_manifest.json"

// RunStatus represents the phase a run is in.
type RunStatus string

const (
	StatusDiscovering RunStatus = "discovering"
	StatusParsing     RunStatus = "parsing"
	StatusPaginating  RunStatus = "paginating"
	StatusRendering   RunStatus = "rendering"
	StatusCompleted   RunStatus = "completed"
	StatusFailed      RunStatus = "failed"
)

// Run tracks one aggregation pass over an output directory.
type Run struct {
	OutputDir string
	GroupDir  string

	Status RunStatus
	Phase  string

	Progress Progress
	Pages    []string

	StartedAt time.Time
	UpdatedAt time.Time
}

// Progress counts what a run has processed.
type Progress struct {
	Reports      int `json:"reports"`
	Figures      int `json:"figures"`
	Unclassified int `json:"unclassified"`
	LinksCreated int `json:"links_created"`
	LinksKept    int `json:"links_kept"`
	PagesWritten int `json:"pages_written"`
}

func newRun(outputDir, groupDir string) *Run {
	now := time.Now()
	return &Run{
		OutputDir: outputDir,
		GroupDir:  groupDir,
		Status:    StatusDiscovering,
		Phase:     "discovering",
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus moves the run to another phase.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

func (r *Run) addLink(res LinkResult) {
	switch res {
	case LinkCreated:
		r.Progress.LinksCreated++
	case LinkKept:
		r.Progress.LinksKept++
	}
	r.UpdatedAt = time.Now()
}

func (r *Run) addPage(name string) {
	r.Pages = append(r.Pages, name)
	r.Progress.PagesWritten++
	r.UpdatedAt = time.Now()
}

// RunSnapshot is a JSON-safe copy of run state.
type RunSnapshot struct {
	OutputDir string    `json:"output_dir"`
	Status    RunStatus `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	Pages     []string  `json:"pages"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	pages := make([]string, len(r.Pages))
	copy(pages, r.Pages)
	return RunSnapshot{
		OutputDir: r.OutputDir,
		Status:    r.Status,
		Phase:     r.Phase,
		Progress:  r.Progress,
		Pages:     pages,
		StartedAt: r.StartedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *Run) writeManifest() error {
	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.GroupDir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
