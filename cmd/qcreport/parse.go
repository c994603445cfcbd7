package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/dgallion1/qcreport/internal/figure"
	"github.com/dgallion1/qcreport/internal/parser"
	"github.com/dgallion1/qcreport/internal/render"
)

var errReportPath = errors.New("expected exactly one argument: report path")

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the figures found in one subject report as JSON lines",
		ArgsUsage: "<report.html>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errReportPath
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			records, err := parser.New(cfg.ParserMarkers()).ParseFile(cmd.Args().First())
			if err != nil {
				return err
			}

			columns := figure.Columns(records)
			w := cmd.Root().Writer
			for _, rec := range records {
				line, err := render.MarshalFields(unpaged(rec.Row(columns)))
				if err != nil {
					return err
				}
				if _, err := w.Write(append(line, '\n')); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// unpaged drops the pagination columns, which mean nothing before grouping.
func unpaged(row []figure.Field) []figure.Field {
	out := make([]figure.Field, 0, len(row))
	for _, f := range row {
		if f.Key == figure.FieldIdx || f.Key == figure.FieldChunk {
			continue
		}
		out = append(out, f)
	}
	return out
}
