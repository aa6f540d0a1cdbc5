// Package provider defines the collaborator contract shared by the
// transcription, diarization and punctuation backends, a name-keyed
// registry of backend factories, and Use, the scoped-ownership helper that
// guarantees a backend is released before the next stage acquires its own.
//
// Opt-in lifecycle:
//   - Initializable: backends that need setup (load a model, probe a binary)
//   - Closeable: backends that hold resources (a loaded model, a sidecar session)
//
// # Usage
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("whisperx", func() (transcription.Provider, error) {
//	    return whisperx.New(cfg.WhisperX, log), nil
//	})
//	res, err := provider.UseNamed(ctx, reg, "whisperx", func(ctx context.Context, p transcription.Provider) (*transcription.Result, error) {
//	    return p.Transcribe(ctx, req)
//	})
package provider
