package scribe

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/diarscribe/errors"
)

// Manifest summarises a run. It is published as <name>.manifest.yaml.
type Manifest struct {
	RunID       string         `yaml:"run_id"`
	Version     string         `yaml:"version"`
	CreatedAt   time.Time      `yaml:"created_at"`
	Language    string         `yaml:"language"`
	Inputs      []Input        `yaml:"inputs"`
	Counts      Counts         `yaml:"counts"`
	Punctuation PunctuationRun `yaml:"punctuation"`
	Stages      []StageTiming  `yaml:"stages"`
	Diagnostics []Diagnostic   `yaml:"diagnostics,omitempty"`
	Artifacts   []string       `yaml:"artifacts"`
}

// Input is a fingerprinted input file.
type Input struct {
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path"`
	Blake3 string `yaml:"blake3"`
}

// Counts are the sizes of the pipeline's intermediate sequences.
type Counts struct {
	Words          int `yaml:"words"`
	Turns          int `yaml:"turns"`
	Speakers       int `yaml:"speakers"`
	Sentences      int `yaml:"sentences"`
	SkippedRecords int `yaml:"skipped_records"`
	Overlaps       int `yaml:"overlaps"`
}

// PunctuationRun records what the punctuation stage did.
type PunctuationRun struct {
	Applied   bool   `yaml:"applied"`
	Provider  string `yaml:"provider,omitempty"`
	Realigned int    `yaml:"realigned"`
}

// StageTiming is the outcome of one stage.
type StageTiming struct {
	Name       string `yaml:"name"`
	Status     string `yaml:"status"`
	DurationMs int64  `yaml:"duration_ms"`
	Reason     string `yaml:"reason,omitempty"`
}

// Diagnostic is a non-fatal finding.
type Diagnostic struct {
	Code    errors.ErrorCode `yaml:"code"`
	Message string           `yaml:"message"`
	Details map[string]any   `yaml:"details,omitempty"`
}

// Diagnostics converts AppErrors to their manifest form.
func Diagnostics(errs []*errors.AppError) []Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = Diagnostic{Code: e.Code, Message: e.Message, Details: e.Details}
	}
	return out
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// ParseManifest decodes a manifest written by Marshal.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.InvalidInput("manifest", err.Error())
	}
	return &m, nil
}
