package diarization

import (
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/timeline"
)

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Result holds the turns of a diarization call.
type Result struct {
	// Turns are in the order the backend reported them.
	Turns []timeline.Turn `json:"turns"`
	// Skipped holds one MALFORMED_TIMELINE_RECORD error per dropped record.
	Skipped []*errors.AppError `json:"-"`
}

// NumSpeakers returns the number of distinct speaker ids in the result.
func (r *Result) NumSpeakers() int {
	seen := make(map[int]struct{}, len(r.Turns))
	for _, t := range r.Turns {
		seen[t.SpeakerID] = struct{}{}
	}
	return len(seen)
}
