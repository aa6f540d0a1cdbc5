// Package rttm implements diarization.Provider over RTTM files.
//
// With only Path set the file is read as-is. With Command set the
// command is run first; the placeholders {audio} and {output} in Args are
// replaced with the audio path and the RTTM path the command must write.
package rttm

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/diarscribe/diarization"
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/process"
	"github.com/kbukum/diarscribe/timeline"
)

// ProviderName is the registered name for the RTTM provider.
const ProviderName = "rttm"

// Config holds configuration for the RTTM provider.
type Config struct {
	// Path is the RTTM file to read. Required unless Command is set.
	Path string `yaml:"path,omitempty" mapstructure:"path"`
	// Command is an external diarizer that writes an RTTM file.
	Command string `yaml:"command,omitempty" mapstructure:"command"`
	// Args are passed to Command after placeholder substitution.
	Args    []string       `yaml:"args,omitempty" mapstructure:"args"`
	Process process.Config `yaml:"process" mapstructure:"process"`
}

// Provider implements diarization.Provider.
type Provider struct {
	cfg    Config
	runner *process.Runner
	log    *logger.Logger
}

// NewProvider creates an RTTM provider.
func NewProvider(cfg Config, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent(ProviderName)
	return &Provider{cfg: cfg, runner: process.NewRunner(cfg.Process, log), log: log}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the command resolves or the file exists.
func (p *Provider) IsAvailable(context.Context) bool {
	if p.cfg.Command != "" {
		return process.Available(p.cfg.Command)
	}
	_, err := os.Stat(p.cfg.Path)
	return err == nil
}

// Diarize runs the configured command, if any, and parses the RTTM output.
func (p *Provider) Diarize(ctx context.Context, req diarization.Request) (*diarization.Result, error) {
	path := p.cfg.Path
	if p.cfg.Command != "" {
		if path == "" {
			dir, err := os.MkdirTemp("", "diarize-*")
			if err != nil {
				return nil, errors.Internal(err)
			}
			defer os.RemoveAll(dir)
			path = filepath.Join(dir, "output.rttm")
		}
		args := make([]string, len(p.cfg.Args))
		r := strings.NewReplacer("{audio}", req.AudioPath, "{output}", path)
		for i, a := range p.cfg.Args {
			args[i] = r.Replace(a)
		}
		if _, err := p.runner.Run(ctx, process.Command{Binary: p.cfg.Command, Args: args}); err != nil {
			return nil, err
		}
	}
	if path == "" {
		return nil, errors.InvalidInput("diarization.rttm.path", "an RTTM path or command is required")
	}
	return p.read(path)
}

func (p *Provider) read(path string) (*diarization.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("rttm", path)
		}
		return nil, errors.Internal(err)
	}
	defer f.Close()

	turns, skipped, err := timeline.ParseRTTM(f, p.log.WithFields(logger.Fields(logger.FieldPath, path)))
	if err != nil {
		return nil, errors.InvalidInput("rttm", err.Error()).WithCause(err)
	}
	return &diarization.Result{Turns: turns, Skipped: skipped}, nil
}

var _ diarization.Provider = (*Provider)(nil)
