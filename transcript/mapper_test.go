package transcript_test

import (
	"reflect"
	"testing"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/timeline"
	"github.com/kbukum/diarscribe/transcript"
)

func mustTimeline(t *testing.T, turns ...timeline.Turn) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.New(turns, timeline.Options{})
	if err != nil {
		t.Fatalf("timeline.New: %v", err)
	}
	return tl
}

func speakers(entries []transcript.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.SpeakerID
	}
	return out
}

func TestMapSpeakers(t *testing.T) {
	tl := mustTimeline(t,
		timeline.Turn{StartMs: 1000, EndMs: 2000, SpeakerID: 0},
		timeline.Turn{StartMs: 2000, EndMs: 3000, SpeakerID: 1},
		timeline.Turn{StartMs: 4000, EndMs: 5000, SpeakerID: 2},
	)

	tests := []struct {
		name    string
		startMs int64
		want    int
	}{
		{"before first turn", 0, 0},
		{"inside first turn", 1500, 0},
		{"exactly at turn start", 2000, 1},
		{"inside second turn", 2999, 1},
		{"at end of turn followed by gap", 3000, 1},
		{"inside gap", 3500, 2},
		{"exactly at last turn start", 4000, 2},
		{"after last turn", 9000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transcript.MapSpeakers([]transcript.Word{{Text: "w", StartMs: tt.startMs, EndMs: tt.startMs + 100}}, tl)
			if err != nil {
				t.Fatal(err)
			}
			if got[0].SpeakerID != tt.want {
				t.Errorf("speaker = %d, want %d", got[0].SpeakerID, tt.want)
			}
		})
	}
}

func TestMapSpeakers_CoverageAndOrder(t *testing.T) {
	tl := mustTimeline(t,
		timeline.Turn{StartMs: 0, EndMs: 1000, SpeakerID: 4},
		timeline.Turn{StartMs: 1000, EndMs: 2000, SpeakerID: 7},
	)
	words := []transcript.Word{
		{Text: "a", StartMs: 100, EndMs: 200},
		{Text: "b", StartMs: 900, EndMs: 1100},
		{Text: "c", StartMs: 1100, EndMs: 1200},
		{Text: "d", StartMs: 1150, EndMs: 1180},
		{Text: "e", StartMs: 5000, EndMs: 5100},
	}
	got, err := transcript.MapSpeakers(words, tl)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(words) {
		t.Fatalf("len = %d, want %d", len(got), len(words))
	}
	for i, e := range got {
		if e.Text != words[i].Text || e.StartMs != words[i].StartMs || e.EndMs != words[i].EndMs {
			t.Errorf("entry %d = %+v does not preserve word %+v", i, e, words[i])
		}
	}
	if s := speakers(got); !reflect.DeepEqual(s, []int{4, 4, 7, 7, 7}) {
		t.Errorf("speakers = %v", s)
	}
}

func TestMapSpeakers_StraddlingWordUsesStart(t *testing.T) {
	tl := mustTimeline(t,
		timeline.Turn{StartMs: 0, EndMs: 1000, SpeakerID: 0},
		timeline.Turn{StartMs: 1000, EndMs: 2000, SpeakerID: 1},
	)
	got, _ := transcript.MapSpeakers([]transcript.Word{{Text: "long", StartMs: 990, EndMs: 1900}}, tl)
	if got[0].SpeakerID != 0 {
		t.Errorf("straddling word assigned to %d, want 0", got[0].SpeakerID)
	}
}

func TestMapSpeakers_Errors(t *testing.T) {
	if _, err := transcript.MapSpeakers([]transcript.Word{{Text: "x"}}, nil); !errors.HasCode(err, errors.ErrCodeEmptyTimeline) {
		t.Errorf("expected EMPTY_TIMELINE, got %v", err)
	}

	tl := mustTimeline(t, timeline.Turn{StartMs: 0, EndMs: 10, SpeakerID: 0})
	got, err := transcript.MapSpeakers(nil, tl)
	if err != nil || len(got) != 0 {
		t.Errorf("empty words: got %v, %v", got, err)
	}
}
