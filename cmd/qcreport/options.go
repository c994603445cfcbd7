package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dgallion1/qcreport/internal/config"
	"github.com/dgallion1/qcreport/internal/render"
)

const (
	flagConfig         = "config"
	flagReportsPerPage = "reports-per-page"
	flagPathToFigures  = "path-to-figures"
	flagInstructions   = "instructions"
	flagLogLevel       = "log-level"
	flagLogFormat      = "log-format"
)

func globalFlags() []cli.Flag {
	def := config.Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
		},
		&cli.IntFlag{
			Name:    flagReportsPerPage,
			Aliases: []string{"reports_per_page"},
			Usage:   "How many figures per page; 0 puts every figure of a report type on a single page",
			Value:   def.ReportsPerPage,
		},
		&cli.StringFlag{
			Name:    flagPathToFigures,
			Aliases: []string{"path_to_figures"},
			Usage:   "Relative path from <group>/sub-{subject} to the subject's figure directory",
			Value:   def.PathToFigures,
		},
		&cli.StringFlag{
			Name:  flagInstructions,
			Usage: "Markdown file with reviewer instructions shown on every page",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "Log level: debug, info, warn, error",
			Value: def.Log.Level,
		},
		&cli.StringFlag{
			Name:  flagLogFormat,
			Usage: "Log format: text, json",
			Value: def.Log.Format,
		},
	}
}

// loadConfig layers explicitly set flags over file and environment settings.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String(flagConfig))
	if err != nil {
		return cfg, err
	}

	if cmd.IsSet(flagReportsPerPage) {
		cfg.ReportsPerPage = cmd.Int(flagReportsPerPage)
	}
	if cmd.IsSet(flagPathToFigures) {
		cfg.PathToFigures = cmd.String(flagPathToFigures)
	}
	if cmd.IsSet(flagInstructions) {
		cfg.InstructionsFile = cmd.String(flagInstructions)
	}
	if cmd.IsSet(flagLogLevel) {
		cfg.Log.Level = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagLogFormat) {
		cfg.Log.Format = cmd.String(flagLogFormat)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Log) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func loadInstructions(cfg config.Config) ([]byte, error) {
	if cfg.InstructionsFile == "" {
		return render.DefaultInstructions(), nil
	}
	data, err := os.ReadFile(cfg.InstructionsFile)
	if err != nil {
		return nil, fmt.Errorf("read instructions: %w", err)
	}
	return data, nil
}
