package diarization

import (
	"context"

	"github.com/kbukum/diarscribe/provider"
)

// Provider is the interface that diarization backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Diarize returns the speaker turns found in the audio.
	Diarize(ctx context.Context, req Request) (*Result, error)
}
