package transcript

import (
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/timeline"
)

// MapSpeakers assigns every word to the turn containing its start instant.
//
// A cursor advances through the timeline while the current turn ends before
// the word starts. A turn ending exactly where the next one begins yields the
// boundary instant to the later turn. Words before the first turn go to the
// first turn; words after the last turn go to the last.
//
// The result has the same length and order as words. A nil or empty
// timeline fails with EMPTY_TIMELINE.
func MapSpeakers(words []Word, tl *timeline.Timeline) ([]Entry, error) {
	if tl == nil || tl.Len() == 0 {
		return nil, errors.EmptyTimeline()
	}

	entries := make([]Entry, len(words))
	last := tl.Len() - 1
	cursor := 0
	for i, w := range words {
		for cursor < last && endsBefore(tl.Turn(cursor), tl.Turn(cursor+1), w.StartMs) {
			cursor++
		}
		entries[i] = Entry{
			Text:      w.Text,
			StartMs:   w.StartMs,
			EndMs:     w.EndMs,
			SpeakerID: tl.Turn(cursor).SpeakerID,
		}
	}
	return entries, nil
}

func endsBefore(cur, next timeline.Turn, startMs int64) bool {
	if cur.EndMs < startMs {
		return true
	}
	return cur.EndMs == startMs && next.StartMs <= startMs
}
