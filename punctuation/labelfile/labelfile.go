// Package labelfile implements punctuation.Restorer by reading labels that
// a punctuation model wrote ahead of time.
//
// The file is a JSON array with one entry per word, either
// [["word", "."], ["next", "0"]] pairs or [{"text": "word", "mark": "."}]
// objects. "0" and "" both mean no punctuation.
package labelfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/punctuation"
)

// ProviderName is the registered name for the label-file restorer.
const ProviderName = "labelfile"

// Provider reads precomputed labels from a JSON file.
type Provider struct {
	path   string
	labels []punctuation.Label
}

// NewProvider creates a restorer reading from path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the label file exists.
func (p *Provider) IsAvailable(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// Init loads and decodes the label file.
func (p *Provider) Init(context.Context) error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("punctuation label file", p.path)
		}
		return fmt.Errorf("read label file: %w", err)
	}
	labels, err := decode(data)
	if err != nil {
		return errors.InvalidInput("labels", fmt.Sprintf("%s: %v", p.path, err))
	}
	p.labels = labels
	return nil
}

// Close drops the loaded labels.
func (p *Provider) Close(context.Context) error {
	p.labels = nil
	return nil
}

// Restore returns the loaded labels. The word count must match.
func (p *Provider) Restore(_ context.Context, words []string, _ string) ([]punctuation.Label, error) {
	if len(p.labels) != len(words) {
		return nil, errors.AlignmentLengthMismatch(len(words), len(p.labels))
	}
	out := make([]punctuation.Label, len(p.labels))
	copy(out, p.labels)
	return out, nil
}

func decode(data []byte) ([]punctuation.Label, error) {
	var objects []punctuation.Label
	if err := json.Unmarshal(data, &objects); err == nil {
		return normalize(objects), nil
	}

	var pairs [][]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("expected an array of [word, mark] pairs or {text, mark} objects")
	}
	labels := make([]punctuation.Label, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("entry %d: expected [word, mark], got %d values", i, len(pair))
		}
		labels[i] = punctuation.Label{Text: pair[0], Mark: pair[1]}
	}
	return normalize(labels), nil
}

func normalize(labels []punctuation.Label) []punctuation.Label {
	for i := range labels {
		if labels[i].Mark == "0" {
			labels[i].Mark = ""
		}
	}
	return labels
}

var _ punctuation.Restorer = (*Provider)(nil)
