package scribe

import (
	"bytes"
	"fmt"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/punctuation"
	"github.com/kbukum/diarscribe/render"
	"github.com/kbukum/diarscribe/timeline"
	"github.com/kbukum/diarscribe/transcript"
)

// AlignOptions control the in-memory alignment core.
type AlignOptions struct {
	Timeline timeline.Options
	// Punctuate applies labels when the language passes the gate. When the
	// language is not supported, an UNSUPPORTED_LANGUAGE diagnostic is
	// recorded and the entries pass through unmodified.
	Punctuate bool
	// Languages is the punctuation allow-list; empty means punctuation.DefaultLanguages.
	Languages []string
	// Realign re-attributes cross-speaker sentence fragments after reflow.
	Realign            bool
	MaxWordsInSentence int
}

// Alignment is the output of Align.
type Alignment struct {
	Timeline  *timeline.Timeline
	Entries   []transcript.Entry
	Sentences []transcript.Sentence
	Overlaps  []timeline.Overlap

	PunctuationApplied bool
	// Realigned counts the words whose speaker Realign changed.
	Realigned int

	// Diagnostics are non-fatal findings: overlapping turns and an
	// unsupported language.
	Diagnostics []*errors.AppError
}

// Align runs the pure core: it builds the speaker timeline, maps every word
// to a speaker, applies punctuation labels when enabled and supported,
// optionally realigns speakers, and aggregates sentences.
//
// It fails with EMPTY_TIMELINE when turns is empty, OVERLAPPING_TIMELINE when
// opts.Timeline.Strict is set and turns overlap, and ALIGNMENT_LENGTH_MISMATCH
// when labels do not match the words.
func Align(words []transcript.Word, turns []timeline.Turn, labels []punctuation.Label, language string, opts AlignOptions) (*Alignment, error) {
	tl, err := timeline.New(turns, opts.Timeline)
	if err != nil {
		return nil, err
	}
	a := &Alignment{Timeline: tl, Overlaps: tl.Overlaps()}
	for _, ov := range a.Overlaps {
		a.Diagnostics = append(a.Diagnostics, errors.OverlappingTimeline(ov.Prev.EndMs, ov.Next.StartMs))
	}

	entries, err := transcript.MapSpeakers(words, tl)
	if err != nil {
		return nil, err
	}

	if opts.Punctuate {
		if !punctuation.Supported(language, opts.Languages) {
			a.Diagnostics = append(a.Diagnostics, errors.UnsupportedLanguage(language))
		} else {
			if entries, err = punctuation.Reflow(entries, labels); err != nil {
				return nil, err
			}
			a.PunctuationApplied = true
			if opts.Realign {
				realigned := punctuation.Realign(entries, opts.MaxWordsInSentence)
				a.Realigned = changedSpeakers(entries, realigned)
				entries = realigned
			}
		}
	}

	a.Entries = entries
	a.Sentences = transcript.Sentences(entries)
	return a, nil
}

func changedSpeakers(before, after []transcript.Entry) int {
	n := 0
	for i := range before {
		if before[i].SpeakerID != after[i].SpeakerID {
			n++
		}
	}
	return n
}

// Render serializes sentences into the transcript and subtitle documents.
func Render(sentences []transcript.Sentence) (txt, srt []byte, err error) {
	var tb, sb bytes.Buffer
	if err := render.WriteTranscript(&tb, sentences); err != nil {
		return nil, nil, fmt.Errorf("render transcript: %w", err)
	}
	if err := render.WriteSubtitles(&sb, sentences); err != nil {
		return nil, nil, fmt.Errorf("render subtitles: %w", err)
	}
	return tb.Bytes(), sb.Bytes(), nil
}
