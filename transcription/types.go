package transcription

import (
	"strings"

	"github.com/kbukum/diarscribe/transcript"
)

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio (e.g. "en"). Empty
	// lets the backend detect it.
	Language string `json:"language,omitempty"`
	// Model is the recognition model to use.
	Model string `json:"model,omitempty"`
}

// Result holds the aligned words of a transcription call.
type Result struct {
	// Words are in temporal order with millisecond timestamps.
	Words []transcript.Word `json:"words"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
	// Text is the raw recognizer text.
	Text string `json:"text,omitempty"`
	// DurationMs is the end of the last recognized segment.
	DurationMs int64 `json:"duration_ms,omitempty"`
}

// TimedWord is a word as reported by an aligner, which leaves timestamps
// out for tokens it could not place (digits, symbols).
type TimedWord struct {
	Text    string
	StartMs *int64
	EndMs   *int64
}

// ResolveWords fills missing timestamps from the neighbouring words,
// falling back to the enclosing segment bounds. Blank words are dropped.
func ResolveWords(raw []TimedWord, segStartMs, segEndMs int64) []transcript.Word {
	out := make([]transcript.Word, 0, len(raw))
	prevEnd := segStartMs
	for i, w := range raw {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		start := prevEnd
		if w.StartMs != nil {
			start = *w.StartMs
		}
		end := nextStart(raw[i+1:], segEndMs)
		if w.EndMs != nil {
			end = *w.EndMs
		}
		end = max(end, start)
		out = append(out, transcript.Word{Text: text, StartMs: start, EndMs: end})
		prevEnd = end
	}
	return out
}

func nextStart(rest []TimedWord, fallback int64) int64 {
	for _, w := range rest {
		if w.StartMs != nil {
			return *w.StartMs
		}
	}
	return fallback
}
