package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dgallion1/qcreport/internal/pipeline"
	"github.com/dgallion1/qcreport/internal/render"
)

var errOutputPath = errors.New("expected exactly one argument: output path")

func buildAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errOutputPath
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd.Root().ErrWriter, cfg.Log)

	instructions, err := loadInstructions(cfg)
	if err != nil {
		return err
	}
	renderer, err := render.New(instructions)
	if err != nil {
		return err
	}

	orch := pipeline.NewOrchestrator(cfg, renderer, log)
	snap, err := orch.Run(ctx, cmd.Args().First())
	if err != nil {
		return fmt.Errorf("%s: %w", snap.Phase, err)
	}
	return nil
}
