package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dshills/dlist/internal/script"
	"github.com/dshills/dlist/internal/watcher"
)

func runScript(ctx context.Context, e *env, args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	watch := fs.Bool("watch", false, "Re-run the script whenever it changes")
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: dlist run [-watch] SCRIPT.lua\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	path := fs.Arg(0)

	runner := script.NewRunner(e.logger,
		script.WithTimeout(e.cfg.Script.Timeout.Std()),
		script.WithCallLimit(e.cfg.Script.CallLimit),
		script.WithOutput(e.stdout),
	)

	if !*watch {
		if _, err := runner.RunFile(ctx, path); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	w, err := watcher.New(
		watcher.WithDebounce(e.cfg.Watch.Debounce.Std()),
		watcher.WithLogger(e.logger),
	)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: failed to start watcher: %v\n", err)
		return exitError
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		fmt.Fprintf(e.stderr, "Error: cannot watch %s: %v\n", path, err)
		return exitError
	}

	// Failures are reported and the loop keeps waiting for a fix.
	if _, err := runner.RunFile(ctx, path); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
	}
	e.logger.Info("watching %s, interrupt to stop", path)

	for {
		select {
		case <-ctx.Done():
			return exitOK
		case ev, ok := <-w.Events():
			if !ok {
				return exitOK
			}
			e.logger.Debug("%s changed (%s)", ev.Path, ev.Op)
			if _, err := runner.RunFile(ctx, path); err != nil {
				fmt.Fprintf(e.stderr, "Error: %v\n", err)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return exitOK
			}
			e.logger.Warn("watch error: %v", err)
		}
	}
}
