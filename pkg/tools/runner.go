// Package tools invokes the external collaborator utilities (tree/eza,
// tokei) behind a narrow interface, with availability probing, a bounded
// timeout, and documented fallbacks when a tool is absent.
package tools

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// ErrUnavailable reports that an external tool is not installed.
var ErrUnavailable = errors.New("external tool unavailable")

// defaultTimeout bounds a single collaborator invocation so one wedged tool
// cannot hang the run.
const defaultTimeout = 10 * time.Second

// Runner executes external collaborator tools.
type Runner interface {
	Available(name string) bool
	// Run executes the tool and returns its stdout. It returns ErrUnavailable
	// when the binary is not on PATH, and the context error on timeout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type runner struct {
	timeout time.Duration
}

// NewRunner creates the default Runner.
func NewRunner() Runner {
	return &runner{timeout: defaultTimeout}
}

var _ Runner = (*runner)(nil)

func (r *runner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (r *runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if !r.Available(name) {
		return nil, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return out, err
}
