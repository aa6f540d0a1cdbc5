package timeline

import (
	"reflect"
	"testing"

	"github.com/kbukum/diarscribe/errors"
)

func TestNew_Empty(t *testing.T) {
	_, err := New(nil, Options{})
	if !errors.HasCode(err, errors.ErrCodeEmptyTimeline) {
		t.Fatalf("expected EMPTY_TIMELINE, got %v", err)
	}
}

func TestNew_StableSort(t *testing.T) {
	in := []Turn{
		{StartMs: 500, EndMs: 900, SpeakerID: 1},
		{StartMs: 0, EndMs: 400, SpeakerID: 0},
		{StartMs: 500, EndMs: 600, SpeakerID: 2},
	}
	tl, err := New(in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2}
	var got []int
	for _, turn := range tl.Turns() {
		got = append(got, turn.SpeakerID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("speaker order = %v, want %v", got, want)
	}
	if in[0].SpeakerID != 1 {
		t.Error("New must not reorder the caller's slice")
	}
	if tl.First().SpeakerID != 0 || tl.Last().SpeakerID != 2 || tl.Len() != 3 {
		t.Errorf("First/Last/Len mismatch: %v %v %d", tl.First(), tl.Last(), tl.Len())
	}
}

func TestOverlaps(t *testing.T) {
	turns := []Turn{
		{StartMs: 0, EndMs: 1000, SpeakerID: 0},
		{StartMs: 800, EndMs: 1500, SpeakerID: 1},
		{StartMs: 1500, EndMs: 2000, SpeakerID: 0},
	}

	t.Run("lenient", func(t *testing.T) {
		tl, err := New(turns, Options{})
		if err != nil {
			t.Fatal(err)
		}
		ov := tl.Overlaps()
		if len(ov) != 1 || ov[0].Index != 1 {
			t.Fatalf("overlaps = %+v", ov)
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, err := New(turns, Options{Strict: true})
		if !errors.HasCode(err, errors.ErrCodeOverlappingTimeline) {
			t.Fatalf("expected OVERLAPPING_TIMELINE, got %v", err)
		}
	})

	t.Run("adjacent turns do not overlap", func(t *testing.T) {
		tl, err := New(turns[1:], Options{Strict: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(tl.Overlaps()) != 0 {
			t.Error("touching turns reported as overlap")
		}
	})
}

func TestSpeakers(t *testing.T) {
	tl, _ := New([]Turn{
		{StartMs: 0, EndMs: 1, SpeakerID: 3},
		{StartMs: 1, EndMs: 2, SpeakerID: 1},
		{StartMs: 2, EndMs: 3, SpeakerID: 3},
	}, Options{})
	if got := tl.Speakers(); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("Speakers() = %v", got)
	}
}
