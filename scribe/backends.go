package scribe

import (
	"github.com/kbukum/diarscribe/diarization"
	"github.com/kbukum/diarscribe/diarization/pyannote"
	"github.com/kbukum/diarscribe/diarization/rttm"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/provider"
	"github.com/kbukum/diarscribe/punctuation"
	"github.com/kbukum/diarscribe/punctuation/labelfile"
	"github.com/kbukum/diarscribe/punctuation/sidecar"
	"github.com/kbukum/diarscribe/transcription"
	"github.com/kbukum/diarscribe/transcription/whisper"
	"github.com/kbukum/diarscribe/transcription/whisperx"
)

// Backends holds one registry per collaborator. Each stage creates a fresh
// backend from its registry, so no model handle outlives its stage.
type Backends struct {
	Transcribers *provider.Registry[transcription.Provider]
	Diarizers    *provider.Registry[diarization.Provider]
	Restorers    *provider.Registry[punctuation.Restorer]
}

// NewBackends returns empty registries.
func NewBackends() *Backends {
	return &Backends{
		Transcribers: provider.NewRegistry[transcription.Provider](),
		Diarizers:    provider.NewRegistry[diarization.Provider](),
		Restorers:    provider.NewRegistry[punctuation.Restorer](),
	}
}

// DefaultBackends registers every built-in backend, configured from cfg.
func DefaultBackends(cfg *Config, log *logger.Logger) *Backends {
	b := NewBackends()

	b.Transcribers.RegisterFactory(whisperx.ProviderName, func() (transcription.Provider, error) {
		return whisperx.NewProvider(cfg.Transcription.WhisperX, log), nil
	})
	b.Transcribers.RegisterFactory(whisper.ProviderName, func() (transcription.Provider, error) {
		p, err := whisper.NewProvider(cfg.Transcription.Whisper)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	b.Diarizers.RegisterFactory(rttm.ProviderName, func() (diarization.Provider, error) {
		return rttm.NewProvider(cfg.Diarization.RTTM, log), nil
	})
	b.Diarizers.RegisterFactory(pyannote.ProviderName, func() (diarization.Provider, error) {
		p, err := pyannote.NewProvider(cfg.Diarization.Pyannote, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	b.Restorers.RegisterFactory(sidecar.ProviderName, func() (punctuation.Restorer, error) {
		p, err := sidecar.NewProvider(cfg.Punctuation.Sidecar)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	b.Restorers.RegisterFactory(labelfile.ProviderName, func() (punctuation.Restorer, error) {
		return labelfile.NewProvider(cfg.Punctuation.LabelFile), nil
	})
	return b
}
