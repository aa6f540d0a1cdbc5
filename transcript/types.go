package transcript

import "strings"

// EndingMarks are the punctuation characters that close a sentence.
const EndingMarks = ".?!"

// Word is a recognized word with its aligned time span.
type Word struct {
	Text    string `json:"text" yaml:"text"`
	StartMs int64  `json:"start_ms" yaml:"start_ms"`
	EndMs   int64  `json:"end_ms" yaml:"end_ms"`
}

// Entry is a Word attributed to a speaker.
type Entry struct {
	Text      string `json:"text" yaml:"text"`
	StartMs   int64  `json:"start_ms" yaml:"start_ms"`
	EndMs     int64  `json:"end_ms" yaml:"end_ms"`
	SpeakerID int    `json:"speaker_id" yaml:"speaker_id"`
}

// EndsSentence reports whether the entry's text ends with a sentence-ending mark.
func (e Entry) EndsSentence() bool { return EndsSentence(e.Text) }

// Sentence is a contiguous run of entries from one speaker.
type Sentence struct {
	Text      string `json:"text" yaml:"text"`
	StartMs   int64  `json:"start_ms" yaml:"start_ms"`
	EndMs     int64  `json:"end_ms" yaml:"end_ms"`
	SpeakerID int    `json:"speaker_id" yaml:"speaker_id"`
}

// EndsSentence reports whether text ends with one of EndingMarks.
func EndsSentence(text string) bool {
	return text != "" && strings.ContainsRune(EndingMarks, rune(text[len(text)-1]))
}

// Texts returns the text of each entry in order.
func Texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}
