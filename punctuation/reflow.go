package punctuation

import (
	"regexp"
	"strings"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/transcript"
)

// ModelMarks are the punctuation characters the model can predict. A word
// already ending in one of them is considered punctuated.
const ModelMarks = ".,;:!?"

// Label is the prediction for a single word. Text is the model's view of
// the word and is not used for rewriting; Mark is the predicted
// punctuation, or empty for none.
type Label struct {
	Text string `json:"text" yaml:"text"`
	Mark string `json:"mark" yaml:"mark"`
}

var acronym = regexp.MustCompile(`^(?:[a-zA-Z]\.){2,}$`)

// IsAcronym reports whether word consists of two or more letter-period
// groups, like "U.S." or "e.g.".
func IsAcronym(word string) bool { return acronym.MatchString(word) }

// Reflow applies labels to entries and returns the rewritten copy. Only
// sentence-ending marks are applied, and only to words whose current last
// character is not already model punctuation, unless the word is an
// acronym. A resulting ".." collapses to a single period.
//
// len(labels) must equal len(entries), otherwise Reflow fails with
// ALIGNMENT_LENGTH_MISMATCH.
func Reflow(entries []transcript.Entry, labels []Label) ([]transcript.Entry, error) {
	if len(labels) != len(entries) {
		return nil, errors.AlignmentLengthMismatch(len(entries), len(labels))
	}
	out := make([]transcript.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].Text = applyMark(out[i].Text, labels[i].Mark)
	}
	return out, nil
}

func applyMark(word, mark string) string {
	if word == "" || len(mark) != 1 || !strings.Contains(transcript.EndingMarks, mark) {
		return word
	}
	if strings.ContainsRune(ModelMarks, rune(word[len(word)-1])) && !IsAcronym(word) {
		return word
	}
	word += mark
	if strings.HasSuffix(word, "..") {
		word = word[:len(word)-1]
	}
	return word
}
