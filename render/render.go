package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/diarscribe/transcript"
)

// BOM is the UTF-8 byte-order mark written at the start of every artifact.
const BOM = "\uFEFF"

// SpeakerLabel returns the human-readable label for a speaker id.
func SpeakerLabel(id int) string {
	return fmt.Sprintf("Speaker %d", id)
}

// Timecode formats milliseconds as HH:MM:SS,mmm. Negative input is
// clamped to zero.
func Timecode(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// WriteTranscript writes one paragraph per run of same-speaker sentences,
// each prefixed once with its speaker label. Paragraphs are separated by a
// blank line. No timestamps are written.
func WriteTranscript(w io.Writer, sentences []transcript.Sentence) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(BOM)

	for i, s := range sentences {
		switch {
		case i == 0:
			fmt.Fprintf(bw, "%s: %s", SpeakerLabel(s.SpeakerID), s.Text)
		case s.SpeakerID != sentences[i-1].SpeakerID:
			fmt.Fprintf(bw, "\n\n%s: %s", SpeakerLabel(s.SpeakerID), s.Text)
		default:
			_ = bw.WriteByte(' ')
			_, _ = bw.WriteString(s.Text)
		}
	}
	if len(sentences) > 0 {
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteSubtitles writes one SRT cue per sentence, numbered from 1 without
// gaps. "-->" inside cue text is rewritten to "->" so it cannot be
// mistaken for a timing line.
func WriteSubtitles(w io.Writer, sentences []transcript.Sentence) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(BOM)

	for i, s := range sentences {
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s: %s\n\n",
			i+1,
			Timecode(s.StartMs),
			Timecode(s.EndMs),
			SpeakerLabel(s.SpeakerID),
			strings.ReplaceAll(s.Text, "-->", "->"),
		)
	}
	return bw.Flush()
}
