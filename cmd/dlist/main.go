// Package main is the entry point for the dlist tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/dlist/internal/config"
	"github.com/dshills/dlist/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// options are the global flags.
type options struct {
	ConfigPath string
	LogLevel   string
}

// env is what a subcommand runs with.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dlist", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	var showVersion bool

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "dlist - doubly-linked list with a mutable cursor\n\n")
		fmt.Fprintf(stderr, "Usage: dlist [options] <command> [args...]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  run [-watch] SCRIPT.lua   Run a Lua script against the dlist module\n")
		fmt.Fprintf(stderr, "  view [ITEMS...]           Explore a list interactively\n")
		fmt.Fprintf(stderr, "  check ITEMS...            Round-trip every split and splice, then validate\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  dlist run demo.lua\n")
		fmt.Fprintf(stderr, "  dlist -log-level debug run -watch demo.lua\n")
		fmt.Fprintf(stderr, "  dlist view a b c\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if showVersion {
		fmt.Fprintf(stdout, "dlist %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return exitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return exitError
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	logCfg.Output = stderr

	e := &env{
		cfg:    cfg,
		logger: logging.New(logCfg),
		stdout: stdout,
		stderr: stderr,
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "run":
		return runScript(ctx, e, cmdArgs)
	case "view":
		return runView(e, cmdArgs)
	case "check":
		return runCheck(e, cmdArgs)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}
}
