package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/dlist/internal/logging"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvLogLevel      = "DLIST_LOG_LEVEL"
	EnvScriptTimeout = "DLIST_SCRIPT_TIMEOUT"
)

// Config holds every setting.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Script ScriptConfig `toml:"script"`
	Watch  WatchConfig  `toml:"watch"`
	Viewer ViewerConfig `toml:"viewer"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// ScriptConfig limits Lua script execution.
type ScriptConfig struct {
	// Timeout bounds a single run.
	Timeout Duration `toml:"timeout"`
	// CallLimit bounds the dlist API calls per run; 0 disables it.
	CallLimit int64 `toml:"call_limit"`
}

// WatchConfig configures script re-runs on change.
type WatchConfig struct {
	// Debounce coalesces bursts of file events.
	Debounce Duration `toml:"debounce"`
}

// ViewerConfig configures the interactive explorer.
type ViewerConfig struct {
	CursorColor string `toml:"cursor_color"`
	GhostColor  string `toml:"ghost_color"`
	Separator   string `toml:"separator"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Script: ScriptConfig{
			Timeout:   Duration(5 * time.Second),
			CallLimit: 1_000_000,
		},
		Watch: WatchConfig{Debounce: Duration(100 * time.Millisecond)},
		Viewer: ViewerConfig{
			CursorColor: "#ffaf00",
			GhostColor:  "#5f87af",
			Separator:   " <-> ",
		},
	}
}

// DefaultPath returns the per-user config file location, or "" if the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dlist", "config.toml")
}

// Load reads the config file at path on top of the defaults. An empty path
// means DefaultPath, which may be absent. An explicit path must exist.
// Environment overrides are applied and the result is validated.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFile(path)
		switch {
		case err == nil:
			cfg = fileCfg
		case errors.Is(err, ErrFileNotFound) && !explicit:
		default:
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a TOML file on top of the defaults without applying the
// environment or validating.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, bytes.NewReader(data))
}

// LoadReader reads TOML from r on top of the defaults.
func LoadReader(r io.Reader) (*Config, error) {
	return parse("<reader>", r)
}

func parse(source string, r io.Reader) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, col := decodeErr.Position()
			return nil, &ParseError{
				Path:    source,
				Line:    line,
				Column:  col,
				Message: decodeErr.Error(),
				Err:     err,
			}
		}

		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, &ParseError{
				Path:    source,
				Message: strictErr.String(),
				Err:     fmt.Errorf("%w: %w", ErrUnknownSetting, err),
			}
		}

		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	return cfg, nil
}

// ApplyEnv overrides settings from environment variables, looked up with
// lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvScriptTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ValidationError{Field: EnvScriptTimeout, Value: v, Message: err.Error()}
		}
		c.Script.Timeout = Duration(d)
	}
	return nil
}

// Validate checks every setting and returns the first problem as a
// *ValidationError.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Log.Level) {
		return &ValidationError{Field: "log.level", Value: c.Log.Level, Message: "must be debug, info, warn or error"}
	}
	if c.Script.Timeout <= 0 {
		return &ValidationError{Field: "script.timeout", Value: c.Script.Timeout.Std(), Message: "must be positive"}
	}
	if c.Script.CallLimit < 0 {
		return &ValidationError{Field: "script.call_limit", Value: c.Script.CallLimit, Message: "must not be negative"}
	}
	if c.Watch.Debounce < 0 {
		return &ValidationError{Field: "watch.debounce", Value: c.Watch.Debounce.Std(), Message: "must not be negative"}
	}
	colors := []struct{ field, value string }{
		{"viewer.cursor_color", c.Viewer.CursorColor},
		{"viewer.ghost_color", c.Viewer.GhostColor},
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.value); err != nil {
			return &ValidationError{Field: col.field, Value: col.value, Message: "must be a #rrggbb colour"}
		}
	}
	return nil
}

// LogLevel returns the configured level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}
