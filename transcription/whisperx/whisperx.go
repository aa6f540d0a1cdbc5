// Package whisperx implements transcription.Provider with the whisperx
// command line tool, which runs recognition and forced alignment in one
// process and writes a JSON result next to its other outputs.
//
// When ResultPath is set the tool is not run and the JSON result is read
// from that path instead, so precomputed transcripts can be aligned
// without a GPU.
package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/process"
	"github.com/kbukum/diarscribe/timeline"
	"github.com/kbukum/diarscribe/transcription"
)

const (
	// ProviderName is the registered name for the whisperx provider.
	ProviderName = "whisperx"

	defaultBinary = "whisperx"
	defaultModel  = "large-v2"
)

// Config holds configuration for the whisperx provider.
type Config struct {
	Binary      string         `yaml:"binary" mapstructure:"binary"`
	Model       string         `yaml:"model" mapstructure:"model"`
	Device      string         `yaml:"device,omitempty" mapstructure:"device"`
	ComputeType string         `yaml:"compute_type,omitempty" mapstructure:"compute_type"`
	BatchSize   int            `yaml:"batch_size,omitempty" mapstructure:"batch_size" validate:"gte=0"`
	OutputDir   string         `yaml:"output_dir,omitempty" mapstructure:"output_dir"`
	ResultPath  string         `yaml:"result_path,omitempty" mapstructure:"result_path"`
	Process     process.Config `yaml:"process" mapstructure:"process"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = defaultBinary
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
}

// Provider implements transcription.Provider.
type Provider struct {
	cfg    Config
	runner *process.Runner
	log    *logger.Logger
}

// NewProvider creates a whisperx provider.
func NewProvider(cfg Config, log *logger.Logger) *Provider {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent(ProviderName)
	return &Provider{cfg: cfg, runner: process.NewRunner(cfg.Process, log), log: log}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the result file exists or the binary is on PATH.
func (p *Provider) IsAvailable(context.Context) bool {
	if p.cfg.ResultPath != "" {
		_, err := os.Stat(p.cfg.ResultPath)
		return err == nil
	}
	return process.Available(p.cfg.Binary)
}

// Transcribe runs whisperx on the audio and decodes its JSON result.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if p.cfg.ResultPath != "" {
		return p.readResult(p.cfg.ResultPath, req.Language)
	}
	if req.AudioPath == "" {
		return nil, errors.InvalidInput("audio_path", "audio path is required")
	}

	outDir := p.cfg.OutputDir
	if outDir == "" {
		dir, err := os.MkdirTemp("", "whisperx-*")
		if err != nil {
			return nil, errors.Internal(err)
		}
		defer os.RemoveAll(dir)
		outDir = dir
	}

	if _, err := p.runner.Run(ctx, process.Command{Binary: p.cfg.Binary, Args: p.args(req, outDir)}); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	return p.readResult(filepath.Join(outDir, base+".json"), req.Language)
}

func (p *Provider) args(req transcription.Request, outDir string) []string {
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	args := []string{req.AudioPath, "--model", model, "--output_format", "json", "--output_dir", outDir}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	if p.cfg.Device != "" {
		args = append(args, "--device", p.cfg.Device)
	}
	if p.cfg.ComputeType != "" {
		args = append(args, "--compute_type", p.cfg.ComputeType)
	}
	if p.cfg.BatchSize > 0 {
		args = append(args, "--batch_size", strconv.Itoa(p.cfg.BatchSize))
	}
	return args
}

func (p *Provider) readResult(path, language string) (*transcription.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("whisperx result", path)
		}
		return nil, errors.Internal(err)
	}
	defer f.Close()

	res, err := DecodeResult(f)
	if err != nil {
		return nil, err
	}
	if res.Language == "" {
		res.Language = language
	}
	p.log.Debug("whisperx result decoded", logger.Fields(logger.FieldPath, path, "words", len(res.Words)))
	return res, nil
}

type result struct {
	Segments     []segment `json:"segments"`
	WordSegments []word    `json:"word_segments"`
	Language     string    `json:"language"`
}

type segment struct {
	Text  string          `json:"text"`
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Words []word          `json:"words"`
}

type word struct {
	Text  string           `json:"word"`
	Start *decimal.Decimal `json:"start"`
	End   *decimal.Decimal `json:"end"`
}

// DecodeResult reads a whisperx JSON result. Words are taken from the
// aligned segments, or from word_segments when segments carry none.
func DecodeResult(r io.Reader) (*transcription.Result, error) {
	var raw result
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.InvalidInput("whisperx result", fmt.Sprintf("decode json: %v", err)).WithCause(err)
	}

	res := &transcription.Result{Language: raw.Language}
	texts := make([]string, 0, len(raw.Segments))
	for _, s := range raw.Segments {
		start, end := timeline.Milliseconds(s.Start), timeline.Milliseconds(s.End)
		res.Words = append(res.Words, transcription.ResolveWords(timedWords(s.Words), start, end)...)
		texts = append(texts, strings.TrimSpace(s.Text))
		res.DurationMs = max(res.DurationMs, end)
	}
	if len(res.Words) == 0 && len(raw.WordSegments) > 0 {
		res.Words = transcription.ResolveWords(timedWords(raw.WordSegments), 0, res.DurationMs)
	}
	if len(res.Words) > 0 {
		res.DurationMs = max(res.DurationMs, res.Words[len(res.Words)-1].EndMs)
	}
	res.Text = strings.Join(texts, " ")
	return res, nil
}

func timedWords(words []word) []transcription.TimedWord {
	out := make([]transcription.TimedWord, len(words))
	for i, w := range words {
		out[i] = transcription.TimedWord{Text: w.Text, StartMs: toMs(w.Start), EndMs: toMs(w.End)}
	}
	return out
}

func toMs(d *decimal.Decimal) *int64 {
	if d == nil {
		return nil
	}
	v := timeline.Milliseconds(*d)
	return &v
}

var _ transcription.Provider = (*Provider)(nil)
