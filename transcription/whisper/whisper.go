// Package whisper implements transcription.Provider against a
// faster-whisper HTTP sidecar with word timestamps enabled.
package whisper

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/httpclient"
	"github.com/kbukum/diarscribe/timeline"
	"github.com/kbukum/diarscribe/transcription"
)

const (
	// ProviderName is the registered name for the Whisper provider.
	ProviderName = "whisper"

	defaultWhisperURL   = "http://localhost:8387"
	defaultWhisperModel = "base"
)

// Config holds configuration for the Whisper transcription provider.
type Config struct {
	httpclient.Config `yaml:",inline" mapstructure:",squash"`

	Model       string `yaml:"model" mapstructure:"model"`
	Device      string `yaml:"device,omitempty" mapstructure:"device"`
	ComputeType string `yaml:"compute_type,omitempty" mapstructure:"compute_type"`
}

// Provider implements transcription.Provider using a faster-whisper HTTP sidecar.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new Whisper transcription provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultWhisperURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	c, err := httpclient.New(ProviderName, cfg.Config)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: c}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Whisper sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool { return p.client.Healthy(ctx) }

// Transcribe uploads the audio file and returns the aligned words.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if req.AudioPath == "" {
		return nil, errors.InvalidInput("audio_path", "audio path is required")
	}
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}

	fields := map[string]string{
		"model":           model,
		"word_timestamps": "true",
	}
	if req.Language != "" {
		fields["language"] = req.Language
	}
	if p.cfg.Device != "" {
		fields["device"] = p.cfg.Device
	}
	if p.cfg.ComputeType != "" {
		fields["compute_type"] = p.cfg.ComputeType
	}

	var resp whisperResponse
	err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files:  []httpclient.FileField{{FieldName: "audio", Path: req.AudioPath}},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	res := toResult(&resp)
	if res.Language == "" {
		res.Language = req.Language
	}
	return res, nil
}

// --- internal Whisper API response types ---

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

type whisperSegment struct {
	Text  string          `json:"text"`
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Words []whisperWord   `json:"words"`
}

type whisperWord struct {
	Word  string           `json:"word"`
	Start *decimal.Decimal `json:"start"`
	End   *decimal.Decimal `json:"end"`
}

func toResult(resp *whisperResponse) *transcription.Result {
	res := &transcription.Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
	}
	for _, seg := range resp.Segments {
		start, end := timeline.Milliseconds(seg.Start), timeline.Milliseconds(seg.End)
		raw := make([]transcription.TimedWord, len(seg.Words))
		for i, w := range seg.Words {
			raw[i] = transcription.TimedWord{Text: w.Word, StartMs: millis(w.Start), EndMs: millis(w.End)}
		}
		res.Words = append(res.Words, transcription.ResolveWords(raw, start, end)...)
		res.DurationMs = max(res.DurationMs, end)
	}
	return res
}

func millis(d *decimal.Decimal) *int64 {
	if d == nil {
		return nil
	}
	v := timeline.Milliseconds(*d)
	return &v
}

var _ transcription.Provider = (*Provider)(nil)
