// Command cablebill manages customers, payments, expenses and invoices of a
// cable TV operator from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"cablebill/internal/cli"
	applog "cablebill/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	// Load .env file for local development
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	runID := cli.NewRunID()
	logger, err := cli.SetupLogger(cfg, os.Stderr, runID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
	ctx = applog.WithContext(ctx, logger)

	app, err := cli.OpenApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open data backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		return 1
	}
	defer app.Close()

	logger.Debug("Running command", applog.FieldCommand, args[0], applog.FieldBackend, cfg.DataBackend)

	cmd := &command{app: app, out: os.Stdout, errOut: os.Stderr, runID: runID}
	if err := cmd.run(ctx, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, errUnknownCommand) || errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		logger.Error("Command failed", applog.FieldCommand, args[0], applog.FieldError, err)
		return 1
	}
	return 0
}
