package timeline

import (
	"fmt"
	"slices"

	"github.com/kbukum/diarscribe/errors"
)

// Turn is one contiguous interval attributed to a single speaker.
type Turn struct {
	StartMs   int64 `json:"start_ms" yaml:"start_ms"`
	EndMs     int64 `json:"end_ms" yaml:"end_ms"`
	SpeakerID int   `json:"speaker_id" yaml:"speaker_id"`
}

// DurationMs returns the length of the turn.
func (t Turn) DurationMs() int64 { return t.EndMs - t.StartMs }

func (t Turn) String() string {
	return fmt.Sprintf("speaker %d [%d-%d]", t.SpeakerID, t.StartMs, t.EndMs)
}

// Options controls how a Timeline is built.
type Options struct {
	// Strict turns overlapping turns into an OVERLAPPING_TIMELINE error
	// instead of leaving them for the caller to report.
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

// Overlap describes a turn that starts before its predecessor ends.
type Overlap struct {
	Index int
	Prev  Turn
	Next  Turn
}

// Timeline is an immutable, start-ordered sequence of turns.
type Timeline struct {
	turns []Turn
}

// New copies turns and stable-sorts them by start time. It fails with
// EMPTY_TIMELINE when turns is empty, and with OVERLAPPING_TIMELINE when
// opts.Strict is set and two turns overlap.
func New(turns []Turn, opts Options) (*Timeline, error) {
	if len(turns) == 0 {
		return nil, errors.EmptyTimeline()
	}
	sorted := slices.Clone(turns)
	slices.SortStableFunc(sorted, func(a, b Turn) int {
		switch {
		case a.StartMs < b.StartMs:
			return -1
		case a.StartMs > b.StartMs:
			return 1
		}
		return 0
	})

	tl := &Timeline{turns: sorted}
	if opts.Strict {
		if ov := tl.Overlaps(); len(ov) > 0 {
			return nil, errors.OverlappingTimeline(ov[0].Prev.EndMs, ov[0].Next.StartMs).
				WithDetail("overlaps", len(ov))
		}
	}
	return tl, nil
}

// Len returns the number of turns.
func (tl *Timeline) Len() int { return len(tl.turns) }

// Turn returns the i-th turn in start order.
func (tl *Timeline) Turn(i int) Turn { return tl.turns[i] }

// First returns the earliest turn.
func (tl *Timeline) First() Turn { return tl.turns[0] }

// Last returns the latest-starting turn.
func (tl *Timeline) Last() Turn { return tl.turns[len(tl.turns)-1] }

// Turns returns a copy of the ordered turns.
func (tl *Timeline) Turns() []Turn { return slices.Clone(tl.turns) }

// Speakers returns the distinct speaker ids in order of first appearance.
func (tl *Timeline) Speakers() []int {
	seen := make(map[int]bool)
	var out []int
	for _, t := range tl.turns {
		if !seen[t.SpeakerID] {
			seen[t.SpeakerID] = true
			out = append(out, t.SpeakerID)
		}
	}
	return out
}

// Overlaps reports every turn whose start precedes the previous turn's end.
func (tl *Timeline) Overlaps() []Overlap {
	var out []Overlap
	for i := 1; i < len(tl.turns); i++ {
		if tl.turns[i].StartMs < tl.turns[i-1].EndMs {
			out = append(out, Overlap{Index: i, Prev: tl.turns[i-1], Next: tl.turns[i]})
		}
	}
	return out
}
