// Package config loads the settings shared by the dlist command line tools.
//
// Settings come from three places, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a TOML file (Load, LoadFile)
//  3. DLIST_* environment variables (ApplyEnv)
//
// Example file:
//
//	[log]
//	level = "debug"
//
//	[script]
//	timeout = "2s"
//
//	[viewer]
//	cursor_color = "#ffaf00"
package config
