package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dlist/internal/dlist"
	"github.com/dshills/dlist/internal/viewer"
)

func runView(e *env, args []string) int {
	if !isTerminal() {
		fmt.Fprintf(e.stderr, "Error: view needs an interactive terminal\n")
		return exitError
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: failed to create terminal: %v\n", err)
		return exitError
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(e.stderr, "Error: failed to initialize terminal: %v\n", err)
		return exitError
	}

	list := dlist.From(args...)
	v, err := viewer.New(screen, list, e.cfg.Viewer, e.logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitError
	}

	err = v.Run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintln(e.stdout, list)
	return exitOK
}
