package process_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/process"
)

func TestRunEcho(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	if out := strings.TrimSpace(string(result.Stdout)); out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := string(result.Stdout); out != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", out)
	}
}

func TestRunExitCode(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo failing >&2; exit 42"},
	})
	if !errors.HasCode(err, errors.ErrCodeExternalService) {
		t.Fatalf("expected EXTERNAL_SERVICE_ERROR, got %v", err)
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
	appErr, _ := errors.As(err)
	if appErr.Details["exit_code"] != 42 || appErr.Details["stderr"] != "failing" {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := process.Run(context.Background(), process.Command{Binary: "definitely-not-a-binary-xyz"})
	if !errors.HasCode(err, errors.ErrCodeExternalService) {
		t.Fatalf("err = %v", err)
	}
	if errors.IsRetryable(err) {
		t.Error("a missing binary should not be retryable")
	}

	if _, err := process.Run(context.Background(), process.Command{}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty binary: err = %v", err)
	}
}

func TestRunStderrLines(t *testing.T) {
	var lines []string
	result, err := process.Run(context.Background(), process.Command{
		Binary:   "sh",
		Args:     []string{"-c", `printf 'one\ntwo\r10%%\rdone' >&2`},
		OnStderr: func(l string) { lines = append(lines, l) },
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"one", "two", "10%", "done"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", lines, want)
	}
	if !strings.Contains(string(result.Stderr), "two") {
		t.Errorf("stderr not captured: %q", result.Stderr)
	}
}

func TestRunTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 100 * time.Millisecond,
	})
	if !errors.HasCode(err, errors.ErrCodeTimeout) {
		t.Fatalf("expected TIMEOUT, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("process was not terminated promptly")
	}
}

func TestRunner(t *testing.T) {
	r := process.NewRunner(process.Config{Timeout: 50 * time.Millisecond, GracePeriod: 50 * time.Millisecond}, nil)
	if _, err := r.Run(context.Background(), process.Command{Binary: "sleep", Args: []string{"5"}}); !errors.HasCode(err, errors.ErrCodeTimeout) {
		t.Errorf("runner timeout: err = %v", err)
	}
	res, err := r.Run(context.Background(), process.Command{Binary: "echo", Args: []string{"ok"}})
	if err != nil || strings.TrimSpace(string(res.Stdout)) != "ok" {
		t.Errorf("runner echo: %v %v", res, err)
	}
}

func TestAvailable(t *testing.T) {
	if !process.Available("sh") {
		t.Error("sh should be available")
	}
	if process.Available("definitely-not-a-binary-xyz") {
		t.Error("unexpected binary found")
	}
}
