package script

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/dlist/internal/logging"
)

// Result describes a completed run.
type Result struct {
	RunID    string
	Path     string
	Duration time.Duration
	Calls    int64
}

// Runner executes scripts, each in a fresh State.
type Runner struct {
	logger *logging.Logger
	opts   []Option
}

// NewRunner creates a runner. opts apply to every state it creates.
func NewRunner(logger *logging.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{
		logger: logger.WithComponent("script"),
		opts:   opts,
	}
}

// RunFile executes the Lua file at path.
func (r *Runner) RunFile(ctx context.Context, path string) (Result, error) {
	return r.run(ctx, path, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// RunString executes inline Lua code.
func (r *Runner) RunString(ctx context.Context, code string) (Result, error) {
	return r.run(ctx, "<string>", func(s *State) error {
		return s.DoString(ctx, code)
	})
}

func (r *Runner) run(ctx context.Context, path string, fn func(*State) error) (Result, error) {
	res := Result{RunID: uuid.NewString(), Path: path}
	log := r.logger.WithField("run", res.RunID)

	if err := ctx.Err(); err != nil {
		return res, &ScriptError{Path: path, RunID: res.RunID, Err: err}
	}

	s := NewState(r.opts...)
	defer s.Close()

	log.Debug("running %s", path)
	start := time.Now()
	err := fn(s)
	res.Duration = time.Since(start)
	res.Calls = s.Calls()

	if err != nil {
		log.WithField("calls", res.Calls).Error("%s failed after %s: %v", path, res.Duration, err)
		return res, &ScriptError{Path: path, RunID: res.RunID, Err: err}
	}

	log.WithFields(map[string]any{
		"calls":    res.Calls,
		"duration": res.Duration,
	}).Info("%s finished", path)
	return res, nil
}
