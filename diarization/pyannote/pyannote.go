// Package pyannote implements diarization.Provider against a pyannote
// HTTP sidecar.
package pyannote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kbukum/diarscribe/diarization"
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/httpclient"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/timeline"
)

const (
	// ProviderName is the registered name for the Pyannote provider.
	ProviderName = "pyannote"

	defaultPyannoteURL = "http://localhost:8388"
)

// Config holds configuration for the Pyannote diarization provider.
type Config struct {
	httpclient.Config `yaml:",inline" mapstructure:",squash"`
}

// Provider implements diarization.Provider using the Pyannote HTTP sidecar.
type Provider struct {
	client *httpclient.Client
	log    *logger.Logger
}

// NewProvider creates a new Pyannote diarization provider.
func NewProvider(cfg Config, log *logger.Logger) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPyannoteURL
	}
	if log == nil {
		log = logger.Nop()
	}
	c, err := httpclient.New(ProviderName, cfg.Config)
	if err != nil {
		return nil, err
	}
	return &Provider{client: c, log: log.WithComponent(ProviderName)}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Pyannote sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool { return p.client.Healthy(ctx) }

// Diarize uploads the audio to the sidecar and converts its segments to turns.
func (p *Provider) Diarize(ctx context.Context, req diarization.Request) (*diarization.Result, error) {
	if req.AudioPath == "" {
		return nil, errors.InvalidInput("audio_path", "audio path is required")
	}
	fields := make(map[string]string)
	if req.NumSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(req.NumSpeakers)
	}
	if req.MinSpeakers > 0 {
		fields["min_speakers"] = strconv.Itoa(req.MinSpeakers)
	}
	if req.MaxSpeakers > 0 {
		fields["max_speakers"] = strconv.Itoa(req.MaxSpeakers)
	}

	var resp pyannoteResponse
	err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/diarize",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files:  []httpclient.FileField{{FieldName: "audio", Path: req.AudioPath}},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		appErr := errors.ExternalServiceError(ProviderName, fmt.Errorf("%s", resp.Error))
		appErr.Retryable = false
		return nil, appErr
	}
	return p.toResult(&resp), nil
}

// --- internal Pyannote API types ---

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string          `json:"speaker_id"`
	StartTime decimal.Decimal `json:"start_time"`
	EndTime   decimal.Decimal `json:"end_time"`
}

// toResult converts segments to turns. Segments are numbered from 1 in
// skip diagnostics, matching line numbers for file-based timelines.
func (p *Provider) toResult(resp *pyannoteResponse) *diarization.Result {
	res := &diarization.Result{Turns: make([]timeline.Turn, 0, len(resp.Segments))}
	for i, seg := range resp.Segments {
		turn, reason := toTurn(seg)
		if reason != "" {
			p.log.Warn("timeline record skipped", logger.Fields("segment", i+1, "reason", reason))
			res.Skipped = append(res.Skipped, errors.MalformedTimelineRecord(i+1, reason))
			continue
		}
		res.Turns = append(res.Turns, turn)
	}
	return res
}

func toTurn(seg pyannoteSegment) (timeline.Turn, string) {
	id, err := timeline.SpeakerID(seg.SpeakerID)
	if err != nil {
		return timeline.Turn{}, err.Error()
	}
	if seg.StartTime.IsNegative() || seg.EndTime.LessThan(seg.StartTime) {
		return timeline.Turn{}, fmt.Sprintf("invalid interval %s-%s", seg.StartTime, seg.EndTime)
	}
	return timeline.Turn{
		StartMs:   timeline.Milliseconds(seg.StartTime),
		EndMs:     timeline.Milliseconds(seg.EndTime),
		SpeakerID: id,
	}, ""
}

var _ diarization.Provider = (*Provider)(nil)
