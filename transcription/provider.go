package transcription

import (
	"context"

	"github.com/kbukum/diarscribe/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe recognizes and aligns the audio, returning words in
	// temporal order.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
