package kube

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/metrics"
)

// Runner executes kubectl and helm subprocesses. Failures surface as the
// first stderr line verbatim; both tools put the actionable message there
// and the rest is usage noise.
type Runner struct {
	log *slog.Logger
}

// NewRunner returns a runner logging each invocation at debug level.
func NewRunner(log *slog.Logger) *Runner {
	return &Runner{log: log}
}

// CmdResult is the full capture of one subprocess, for best-effort call
// sites that report both streams instead of failing.
type CmdResult struct {
	Stdout  string
	Stderr  string
	Success bool
}

// Run executes a command and returns its stdout. dir is the working
// directory; empty means inherit.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	res := r.Capture(ctx, dir, name, args...)
	if !res.Success {
		if res.Stderr == "" {
			return "", errors.Newf(errors.ErrCodeUnavailable, "%s not found", name)
		}
		return "", errors.New(errors.ErrCodeApply, FirstStderrLine(res.Stderr))
	}
	return res.Stdout, nil
}

// Capture executes a command and returns both streams without interpreting
// the outcome.
func (r *Runner) Capture(ctx context.Context, dir, name string, args ...string) CmdResult {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("running command", "cmd", name, "args", strings.Join(args, " "), "dir", dir)

	err := cmd.Run()
	res := CmdResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Success: err == nil,
	}
	if err != nil && res.Stderr == "" {
		res.Stderr = name + ": " + err.Error()
	}
	metrics.SubprocessTotal.WithLabelValues(name, outcomeLabel(res.Success)).Inc()
	return res
}

// CaptureInput is Capture with the given stdin.
func (r *Runner) CaptureInput(ctx context.Context, dir, input, name string, args ...string) CmdResult {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("running command", "cmd", name, "args", strings.Join(args, " "), "stdin_bytes", len(input))

	err := cmd.Run()
	res := CmdResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Success: err == nil,
	}
	if err != nil && res.Stderr == "" {
		res.Stderr = name + ": " + err.Error()
	}
	metrics.SubprocessTotal.WithLabelValues(name, outcomeLabel(res.Success)).Inc()
	return res
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// FirstStderrLine returns the first non-empty stderr line.
func FirstStderrLine(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return strings.TrimSpace(stderr)
}
