package separation

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/process"
)

// ProviderName is the name the separator reports.
const ProviderName = "demucs"

// Config holds configuration for vocal separation.
type Config struct {
	Enabled bool           `yaml:"enabled" mapstructure:"enabled"`
	Binary  string         `yaml:"binary" mapstructure:"binary"`
	Model   string         `yaml:"model" mapstructure:"model"`
	Device  string         `yaml:"device,omitempty" mapstructure:"device"`
	Process process.Config `yaml:"process" mapstructure:"process"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = "demucs"
	}
	if c.Model == "" {
		c.Model = "htdemucs"
	}
}

// Separator runs demucs.
type Separator struct {
	cfg    Config
	runner *process.Runner
	log    *logger.Logger
}

// New creates a Separator.
func New(cfg Config, log *logger.Logger) *Separator {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("separation")
	return &Separator{cfg: cfg, runner: process.NewRunner(cfg.Process, log), log: log}
}

// Name returns the provider name.
func (s *Separator) Name() string { return ProviderName }

// IsAvailable reports whether the demucs binary resolves.
func (s *Separator) IsAvailable(context.Context) bool { return process.Available(s.cfg.Binary) }

// Separate writes the vocal stem of audioPath under outDir and returns its path.
func (s *Separator) Separate(ctx context.Context, audioPath, outDir string) (string, error) {
	if audioPath == "" {
		return "", errors.InvalidInput("audio_path", "audio path is required")
	}
	args := []string{"--two-stems=vocals", "-n", s.cfg.Model, "-o", outDir}
	if s.cfg.Device != "" {
		args = append(args, "-d", s.cfg.Device)
	}
	args = append(args, audioPath)

	if _, err := s.runner.Run(ctx, process.Command{Binary: s.cfg.Binary, Args: args}); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	vocals := filepath.Join(outDir, s.cfg.Model, base, "vocals.wav")
	if _, err := os.Stat(vocals); err != nil {
		return "", errors.NotFound("vocal stem", vocals)
	}
	return vocals, nil
}

// Vocals returns the vocal stem when separation is enabled and succeeds,
// and audioPath otherwise. A failure is logged at WARN and reported
// through the second return value.
func (s *Separator) Vocals(ctx context.Context, audioPath, outDir string) (string, error) {
	if !s.cfg.Enabled {
		return audioPath, nil
	}
	vocals, err := s.Separate(ctx, audioPath, outDir)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		s.log.Warn("vocal separation failed, using original audio", logger.ErrorFields("separate", err))
		return audioPath, err
	}
	return vocals, nil
}
