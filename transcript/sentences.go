package transcript

import "strings"

// Sentences groups entries into sentences. A sentence closes after a word
// ending in a sentence-ending mark, or when the next word belongs to a
// different speaker. Empty input yields no sentences.
func Sentences(entries []Entry) []Sentence {
	var (
		out   []Sentence
		words []string
		cur   Sentence
	)
	for i, e := range entries {
		if len(words) == 0 {
			cur = Sentence{StartMs: e.StartMs, SpeakerID: e.SpeakerID}
		}
		words = append(words, e.Text)
		cur.EndMs = e.EndMs

		speakerChange := i+1 < len(entries) && entries[i+1].SpeakerID != cur.SpeakerID
		if e.EndsSentence() || speakerChange || i == len(entries)-1 {
			cur.Text = strings.Join(words, " ")
			out = append(out, cur)
			words = words[:0]
		}
	}
	return out
}
