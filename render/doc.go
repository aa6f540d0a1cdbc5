// Package render serializes speaker-attributed sentences into the two run
// artifacts: a plain transcript with one paragraph per speaker run, and an
// SRT subtitle file with one cue per sentence. Both are UTF-8 with a
// byte-order mark.
package render
