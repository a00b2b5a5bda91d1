package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// emptyConfig writes an empty config file so tests ignore the user's own.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-config", emptyConfig(t)}, args...)
	code := run(ctx, full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "version", args: []string{"-version"}, wantCode: exitOK, wantStdout: "dlist dev"},
		{name: "version shorthand", args: []string{"-v"}, wantCode: exitOK, wantStdout: "Commit: unknown"},
		{name: "help", args: []string{"-h"}, wantCode: exitOK, wantStderr: "Usage: dlist"},
		{name: "no command", args: nil, wantCode: exitUsage, wantStderr: "Commands:"},
		{name: "unknown flag", args: []string{"-bogus"}, wantCode: exitUsage},
		{name: "bad log level", args: []string{"-log-level", "loud", "check", "a"}, wantCode: exitUsage, wantStderr: "invalid log level"},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: exitUsage, wantStderr: `unknown command "frobnicate"`},
		{name: "check without items", args: []string{"check"}, wantCode: exitUsage, wantStderr: "Usage: dlist check"},
		{name: "run without script", args: []string{"run"}, wantCode: exitUsage, wantStderr: "Usage: dlist run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, context.Background(), tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMissingConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.toml")
	code := run(context.Background(), []string{"-c", missing, "check", "a"}, &stdout, &stderr)
	if code != exitError {
		t.Errorf("exit code = %d, want %d", code, exitError)
	}
	if !strings.Contains(stderr.String(), "failed to load config") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestCheckCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, context.Background(), "check", "a", "b", "c")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if want := "ok: [a b c] (8 round trips)\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		items []string
		trips int
	}{
		{items: []string{"x"}, trips: 4},
		{items: []string{"1", "2", "3", "4", "5", "6"}, trips: 14},
	}
	for _, tt := range tests {
		n, err := roundTrip(tt.items)
		if err != nil {
			t.Errorf("roundTrip(%v) error = %v", tt.items, err)
		}
		if n != tt.trips {
			t.Errorf("roundTrip(%v) = %d trips, want %d", tt.items, n, tt.trips)
		}
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lua")
	bad := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(good, []byte(`print(dlist.new(1, 2, 3))`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`error("boom")`), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, context.Background(), "run", good)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "[1 2 3]\n" {
		t.Errorf("stdout = %q, want %q", stdout, "[1 2 3]\n")
	}

	code, _, stderr = runCLI(t, context.Background(), "run", bad)
	if code != exitError {
		t.Errorf("exit code = %d, want %d", code, exitError)
	}
	if !strings.Contains(stderr, "boom") {
		t.Errorf("stderr = %q, want the script error", stderr)
	}
}

func TestRunWatchStopsOnCancel(t *testing.T) {
	script := filepath.Join(t.TempDir(), "s.lua")
	if err := os.WriteFile(script, []byte(`print("ran")`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	code, stdout, stderr := runCLI(t, ctx, "run", "-watch", script)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "ran\n") {
		t.Errorf("stdout = %q, want the initial run", stdout)
	}
}

func TestViewNeedsTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	code, _, stderr := runCLI(t, context.Background(), "view", "a")
	if code != exitError {
		t.Errorf("exit code = %d, want %d", code, exitError)
	}
	if !strings.Contains(stderr, "interactive terminal") {
		t.Errorf("stderr = %q", stderr)
	}
}
