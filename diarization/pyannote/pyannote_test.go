package pyannote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/diarscribe/diarization"
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/httpclient"
	"github.com/kbukum/diarscribe/timeline"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewProvider(Config{Config: httpclient.Config{BaseURL: srv.URL}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	audio := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}
	return p, audio
}

func TestDiarize(t *testing.T) {
	p, audio := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil || r.FormValue("max_speakers") != "3" {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"num_speakers": 2, "segments": [
			{"speaker_id": "SPEAKER_00", "start_time": 0.0, "end_time": 2.5},
			{"speaker_id": "unknown", "start_time": 2.5, "end_time": 3.0},
			{"speaker_id": "SPEAKER_01", "start_time": 3.0, "end_time": 4.0005}
		]}`))
	})

	res, err := p.Diarize(context.Background(), diarization.Request{AudioPath: audio, MaxSpeakers: 3})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	want := []timeline.Turn{{StartMs: 0, EndMs: 2500, SpeakerID: 0}, {StartMs: 3000, EndMs: 4001, SpeakerID: 1}}
	if len(res.Turns) != len(want) || res.Turns[0] != want[0] || res.Turns[1] != want[1] {
		t.Errorf("turns = %+v, want %+v", res.Turns, want)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %v", res.Skipped)
	}
	appErr, _ := errors.As(res.Skipped[0])
	if appErr.Details["line"] != 2 {
		t.Errorf("skipped details = %v", appErr.Details)
	}
}

func TestDiarizeReportedError(t *testing.T) {
	p, audio := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "CUDA out of memory"}`))
	})
	_, err := p.Diarize(context.Background(), diarization.Request{AudioPath: audio})
	if !errors.HasCode(err, errors.ErrCodeExternalService) || errors.IsRetryable(err) {
		t.Errorf("err = %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected sidecar to be available")
	}
}
