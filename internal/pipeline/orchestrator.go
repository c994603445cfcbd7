package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/qcreport/internal/bids"
	"github.com/dgallion1/qcreport/internal/chunker"
	"github.com/dgallion1/qcreport/internal/config"
	"github.com/dgallion1/qcreport/internal/figure"
	"github.com/dgallion1/qcreport/internal/parser"
	"github.com/dgallion1/qcreport/internal/render"
)

// ErrNoSubject is returned for a report whose filename carries no subject.
var ErrNoSubject = errors.New("report path has no subject entity")

// Orchestrator runs the aggregation: discover subject reports, parse them,
// link each subject's figures into the group directory, and write one page
// per report type and chunk.
type Orchestrator struct {
	cfg      config.Config
	parser   *parser.ReportParser
	renderer *render.Renderer
	log      *slog.Logger
}

// NewOrchestrator creates an orchestrator for cfg.
func NewOrchestrator(cfg config.Config, renderer *render.Renderer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		parser:   parser.New(cfg.ParserMarkers()),
		renderer: renderer,
		log:      log,
	}
}

// Run aggregates the subject reports under outputDir. Reports are handled
// one at a time in sorted path order; that order fixes every figure's idx.
// The first error aborts the run.
func (o *Orchestrator) Run(ctx context.Context, outputDir string) (RunSnapshot, error) {
	groupDir := filepath.Join(outputDir, o.cfg.GroupDir)
	run := newRun(outputDir, groupDir)

	snap, err := o.run(ctx, run)
	if err != nil {
		run.SetStatus(StatusFailed, run.Phase)
		return run.Snapshot(), err
	}
	return snap, nil
}

func (o *Orchestrator) run(ctx context.Context, run *Run) (RunSnapshot, error) {
	paths, err := Discover(run.OutputDir)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("discover reports: %w", err)
	}
	o.log.Info("discovered subject reports", "reports", len(paths), "path", run.OutputDir)

	if err := os.Mkdir(run.GroupDir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return RunSnapshot{}, fmt.Errorf("create group dir: %w", err)
	}

	run.SetStatus(StatusParsing, "parsing")
	var merged []figure.Record
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return RunSnapshot{}, err
		}
		records, err := o.processReport(run, path)
		if err != nil {
			return RunSnapshot{}, err
		}
		merged = append(merged, records...)
	}
	run.Progress.Figures = len(merged)

	run.SetStatus(StatusPaginating, "paginating")
	columns := figure.Columns(merged)
	res := chunker.Partition(merged, chunker.Config{PerPage: o.cfg.ReportsPerPage})
	run.Progress.Unclassified = res.Unclassified
	o.log.Info("paginated figures", "report_types", len(res.Groups), "pages", len(res.Pages()))
	if res.Unclassified > 0 {
		o.log.Warn("figures without a report type left off every page", "figures", res.Unclassified)
	}

	run.SetStatus(StatusRendering, "rendering")
	for _, g := range res.Groups {
		for _, p := range g.Pages {
			if err := ctx.Err(); err != nil {
				return RunSnapshot{}, err
			}
			name := render.FileName(p.ReportType, p.Chunk)
			if err := o.write(run.GroupDir, name, func(buf *bytes.Buffer) error {
				return o.renderer.Page(buf, g, p, columns)
			}); err != nil {
				return RunSnapshot{}, err
			}
			run.addPage(name)
			o.log.Debug("wrote page", "report_type", p.ReportType, "chunk", p.Chunk, "figures", len(p.Records))
		}
	}

	if err := o.write(run.GroupDir, render.IndexFile, func(buf *bytes.Buffer) error {
		return o.renderer.Index(buf, res)
	}); err != nil {
		return RunSnapshot{}, err
	}

	run.SetStatus(StatusCompleted, "done")
	if err := run.writeManifest(); err != nil {
		return RunSnapshot{}, err
	}

	o.log.Info("consolidated reports written",
		"reports", run.Progress.Reports,
		"figures", run.Progress.Figures,
		"pages", run.Progress.PagesWritten,
		"path", run.GroupDir,
	)
	return run.Snapshot(), nil
}

// processReport parses one subject report and links the subject's figures.
func (o *Orchestrator) processReport(run *Run, path string) ([]figure.Record, error) {
	subject, ok := bids.Parse(filepath.Base(path)).Get("subject")
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSubject)
	}
	log := o.log.With("report", path, "subject", subject)

	records, err := o.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	run.Progress.Reports++

	res, err := LinkFigures(run.GroupDir, subject, o.cfg.FigureDir(subject))
	if err != nil {
		return nil, err
	}
	run.addLink(res)

	log.Info("parsed report", "figures", len(records), "link_created", res == LinkCreated)
	return records, nil
}

// write creates the file only once fill has rendered all of it.
func (o *Orchestrator) write(dir, name string, fill func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
