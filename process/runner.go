package process

import (
	"context"
	"os/exec"
	"time"

	"github.com/kbukum/diarscribe/logger"
)

// Config holds defaults applied by a Runner.
type Config struct {
	// GracePeriod is the default SIGTERM to SIGKILL delay.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period"`
	// Timeout bounds a single run. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// Runner runs commands with shared defaults and logs their stderr at debug level.
type Runner struct {
	config Config
	log    *logger.Logger
}

// NewRunner creates a Runner. A nil log discards output.
func NewRunner(cfg Config, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{config: cfg, log: log}
}

// Run executes cmd, applying runner defaults.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.GracePeriod == 0 {
		cmd.GracePeriod = r.config.GracePeriod
	}
	if cmd.OnStderr == nil {
		binary := cmd.Binary
		cmd.OnStderr = func(line string) {
			r.log.Debug(line, logger.Fields("binary", binary))
		}
	}
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	r.log.Debug("running command", logger.Fields("binary", cmd.Binary, "args", cmd.Args))
	res, err := Run(ctx, cmd)
	if res != nil {
		r.log.Debug("command finished", logger.Merge(
			logger.DurationFields(cmd.Binary, res.Duration),
			logger.Fields("exit_code", res.ExitCode),
		))
	}
	return res, err
}

// Available reports whether binary resolves on PATH or as a path.
func Available(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}
