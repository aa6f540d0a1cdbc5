package punctuation_test

import (
	"testing"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/punctuation"
	"github.com/kbukum/diarscribe/transcript"
)

func entries(texts ...string) []transcript.Entry {
	out := make([]transcript.Entry, len(texts))
	for i, t := range texts {
		out[i] = transcript.Entry{Text: t, StartMs: int64(i * 100), EndMs: int64(i*100 + 90)}
	}
	return out
}

func marks(ms ...string) []punctuation.Label {
	out := make([]punctuation.Label, len(ms))
	for i, m := range ms {
		out[i] = punctuation.Label{Mark: m}
	}
	return out
}

func TestReflow(t *testing.T) {
	tests := []struct {
		name string
		word string
		mark string
		want string
	}{
		{"appends period", "hello", ".", "hello."},
		{"appends question mark", "really", "?", "really?"},
		{"appends exclamation", "wow", "!", "wow!"},
		{"ignores comma", "well", ",", "well"},
		{"ignores colon", "note", ":", "note"},
		{"ignores no mark", "plain", "", "plain"},
		{"ignores model no-mark label", "plain", "0", "plain"},
		{"already ends with period", "done.", ".", "done."},
		{"already ends with comma", "yes,", ".", "yes,"},
		{"already ends with question", "why?", "!", "why?"},
		{"acronym gets mark and collapses", "U.S.", ".", "U.S."},
		{"acronym gets question mark", "U.S.", "?", "U.S.?"},
		{"lowercase acronym", "e.g.", ".", "e.g."},
		{"acronym without final period", "U.S", ".", "U.S."},
		{"single letter is not acronym", "a.", "?", "a."},
		{"empty word skipped", "", ".", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := punctuation.Reflow(entries(tt.word), marks(tt.mark))
			if err != nil {
				t.Fatal(err)
			}
			if got[0].Text != tt.want {
				t.Errorf("Reflow(%q, %q) = %q, want %q", tt.word, tt.mark, got[0].Text, tt.want)
			}
		})
	}
}

func TestReflow_PreservesTimingAndSpeakers(t *testing.T) {
	in := entries("one", "two")
	in[1].SpeakerID = 3
	got, err := punctuation.Reflow(in, marks("", "."))
	if err != nil {
		t.Fatal(err)
	}
	if got[1].SpeakerID != 3 || got[1].StartMs != in[1].StartMs || got[1].EndMs != in[1].EndMs {
		t.Errorf("entry changed beyond text: %+v", got[1])
	}
	if in[1].Text != "two" {
		t.Error("Reflow mutated its input")
	}
}

func TestReflow_LengthMismatch(t *testing.T) {
	_, err := punctuation.Reflow(entries("a", "b"), marks("."))
	if !errors.HasCode(err, errors.ErrCodeAlignmentLengthMismatch) {
		t.Fatalf("err = %v", err)
	}
}

func TestReflow_Idempotent(t *testing.T) {
	in := entries("So", "the", "U.S.", "said", "no", "really")
	labels := marks("", "", ".", "", "!", "?")

	once, err := punctuation.Reflow(in, labels)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := punctuation.Reflow(once, labels)
	if err != nil {
		t.Fatal(err)
	}
	for i := range once {
		if once[i].Text != twice[i].Text {
			t.Errorf("word %d changed on second pass: %q -> %q", i, once[i].Text, twice[i].Text)
		}
	}
}

func TestIsAcronym(t *testing.T) {
	for word, want := range map[string]bool{
		"U.S.":   true,
		"e.g.":   true,
		"A.B.C.": true,
		"U.S":    false,
		"a.":     false,
		"U.S.A":  false,
		"USA.":   false,
		"":       false,
	} {
		if got := punctuation.IsAcronym(word); got != want {
			t.Errorf("IsAcronym(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		lang  string
		allow []string
		want  bool
	}{
		{"en", nil, true},
		{"EN", nil, true},
		{"en-US", nil, true},
		{"pt_BR", nil, true},
		{"ja", nil, false},
		{"", nil, false},
		{"ja", []string{"ja"}, true},
		{"en", []string{"ja"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := punctuation.Supported(tt.lang, tt.allow); got != tt.want {
				t.Errorf("Supported(%q, %v) = %v, want %v", tt.lang, tt.allow, got, tt.want)
			}
		})
	}
}
