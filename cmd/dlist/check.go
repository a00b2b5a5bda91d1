package main

import (
	"fmt"

	"github.com/dshills/dlist/internal/dlist"
)

func runCheck(e *env, args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(e.stderr, "Usage: dlist check ITEMS...\n")
		return exitUsage
	}

	n, err := roundTrip(args)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintf(e.stdout, "ok: %s (%d round trips)\n", dlist.From(args...), n)
	return exitOK
}

// roundTrip splits the list of items at every cursor position, in both
// directions, splices the part back and validates the result. It returns
// the number of round trips made.
func roundTrip(items []string) (int, error) {
	l := dlist.From(items...)
	want := dlist.From(items...)
	trips := 0

	// Positions 0..len-1 are nodes, len is the ghost.
	for pos := 0; pos <= len(items); pos++ {
		for _, after := range []bool{false, true} {
			c := l.CursorMut()
			for range pos + 1 {
				c.MoveNext()
			}

			if after {
				c.SpliceAfter(c.SplitAfter())
			} else {
				c.SpliceBefore(c.SplitBefore())
			}
			trips++

			if err := l.Validate(); err != nil {
				return trips, fmt.Errorf("position %d: %w", pos, err)
			}
			if !dlist.Equal(l, want) {
				return trips, fmt.Errorf("position %d: got %s, want %s", pos, l, want)
			}
		}
	}
	return trips, nil
}
