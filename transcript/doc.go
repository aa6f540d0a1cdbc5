// Package transcript defines the word, word-speaker and sentence records
// that flow through an alignment run, together with the two stages that
// build them: MapSpeakers attributes each word to a speaker turn, and
// Sentences regroups attributed words into speaker-attributed sentences.
package transcript
