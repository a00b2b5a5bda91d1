// Package script runs Lua scripts against dlist lists and cursors.
//
// This package wraps the gopher-lua library to provide:
//   - A sandboxed Lua state with only the base, table, string and math libraries
//   - A global "dlist" module exposing lists and cursors as userdata
//   - Per-run timeouts (through the state's context) and an API call limit
//
// # Lua API
//
//	local l = dlist.new(1, 2, 3)
//	local c = l:cursor()
//	c:move_next()               -- at 1, c:index() == 0
//	c:insert_after(9)           -- l is [1 9 2 3]
//	local tail = c:split_after()
//	print(l, tail)              -- [1] [9 2 3]
//	c:splice_after(tail)
//	assert(l:check() == nil)
//
// Indexes are zero-based distances from the front, matching the Go API.
// Operations with nothing to return (pop on an empty list, current at the
// ghost position) return nil. Using a cursor after its list was modified
// through the list methods raises a Lua error.
//
// # Runner
//
// Runner executes script files in fresh states, tagging each run with a
// UUID for logging:
//
//	r := script.NewRunner(logger, script.WithTimeout(2*time.Second))
//	res, err := r.RunFile(ctx, "demo.lua")
package script
