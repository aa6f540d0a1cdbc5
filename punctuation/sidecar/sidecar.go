// Package sidecar implements punctuation.Restorer against an HTTP service
// wrapping a token-classification punctuation model.
//
// The service accepts POST /punctuate with {"words": [...], "language": ".."}
// and answers {"labels": [{"word": "..", "label": ".."}, ...]}, where label
// "0" means no punctuation.
package sidecar

import (
	"context"
	"net/http"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/httpclient"
	"github.com/kbukum/diarscribe/punctuation"
)

// ProviderName is the registered name for the sidecar restorer.
const ProviderName = "sidecar"

// noMark is the label the model emits for unpunctuated words.
const noMark = "0"

// Config holds configuration for the sidecar restorer.
type Config struct {
	httpclient.Config `yaml:",inline" mapstructure:",squash"`
}

// Provider implements punctuation.Restorer over HTTP.
type Provider struct {
	client *httpclient.Client
}

// NewProvider creates a sidecar restorer.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8389"
	}
	c, err := httpclient.New("punctuation", cfg.Config)
	if err != nil {
		return nil, err
	}
	return &Provider{client: c}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the sidecar answers its health endpoint.
func (p *Provider) IsAvailable(ctx context.Context) bool { return p.client.Healthy(ctx) }

type punctuateRequest struct {
	Words    []string `json:"words"`
	Language string   `json:"language,omitempty"`
}

type punctuateResponse struct {
	Labels []struct {
		Word  string `json:"word"`
		Label string `json:"label"`
	} `json:"labels"`
}

// Restore sends words to the sidecar and returns its labels.
func (p *Provider) Restore(ctx context.Context, words []string, language string) ([]punctuation.Label, error) {
	if len(words) == 0 {
		return nil, nil
	}
	var resp punctuateResponse
	err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/punctuate",
		Body:   punctuateRequest{Words: words, Language: language},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Labels) != len(words) {
		return nil, errors.AlignmentLengthMismatch(len(words), len(resp.Labels))
	}

	labels := make([]punctuation.Label, len(resp.Labels))
	for i, l := range resp.Labels {
		mark := l.Label
		if mark == noMark {
			mark = ""
		}
		labels[i] = punctuation.Label{Text: l.Word, Mark: mark}
	}
	return labels, nil
}

var _ punctuation.Restorer = (*Provider)(nil)
