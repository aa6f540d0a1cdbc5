// Package timeline holds the speaker timeline produced by a diarizer: an
// ordered collection of speaker turns that words are matched against.
//
// Turns are parsed from RTTM, the line-oriented rich-transcription
// time-marked format:
//
//	SPEAKER audio 1 12.340 1.250 <NA> <NA> SPEAKER_01 <NA> <NA>
//
// Only the start, duration and speaker label columns are used. The numeric
// speaker id is the final underscore-delimited component of the label.
package timeline
