package process

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/kbukum/diarscribe/errors"
)

const stderrTailLines = 20

// Run executes a subprocess and waits for it to complete.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, errors.InvalidInput("binary", "process binary is required")
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // running configured collaborator binaries is the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	var lines *lineWriter
	if cmd.OnStderr != nil {
		lines = &lineWriter{fn: cmd.OnStderr}
		c.Stderr = &teeWriter{a: &stderr, b: lines}
	} else {
		c.Stderr = &stderr
	}

	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	start := time.Now()
	err := c.Run()
	if lines != nil {
		lines.flush()
	}

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if err != nil {
		if ctx.Err() != nil {
			if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
				return result, errors.Timeout(cmd.Binary).WithCause(ctx.Err())
			}
			return result, fmt.Errorf("process %s: killed by context: %w", cmd.Binary, ctx.Err())
		}
		appErr := errors.ExternalServiceError(cmd.Binary, err).
			WithDetail("exit_code", result.ExitCode).
			WithDetail("stderr", result.StderrTail(stderrTailLines))
		var execErr *exec.Error
		if stderrors.As(err, &execErr) {
			appErr.Retryable = false
		}
		return result, appErr
	}
	return result, nil
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	return append(os.Environ(), extra...)
}

type teeWriter struct {
	a, b interface{ Write([]byte) (int, error) }
}

func (t *teeWriter) Write(p []byte) (int, error) {
	n, err := t.a.Write(p)
	if err != nil {
		return n, err
	}
	_, _ = t.b.Write(p)
	return n, nil
}

// lineWriter calls fn once per complete line; carriage returns from
// progress bars also terminate a line.
type lineWriter struct {
	fn  func(string)
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' || b == '\r' {
			w.emit()
			continue
		}
		w.buf = append(w.buf, b)
	}
	return len(p), nil
}

func (w *lineWriter) emit() {
	if len(w.buf) > 0 {
		w.fn(string(w.buf))
		w.buf = w.buf[:0]
	}
}

func (w *lineWriter) flush() { w.emit() }
