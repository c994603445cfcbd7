package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "qcreport",
		Usage:     "Consolidate per-subject QC reports into paginated review pages",
		Version:   version,
		ArgsUsage: "<output_path>",
		Flags:     globalFlags(),
		Action:    buildAction,
		Commands: []*cli.Command{
			parseCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
