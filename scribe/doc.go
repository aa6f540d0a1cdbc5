// Package scribe turns recognized words and diarized speaker turns into a
// speaker-attributed transcript and an SRT subtitle file.
//
// Align is the pure in-memory core: speaker mapping, punctuation reflow,
// optional speaker realignment and sentence aggregation. Pipeline wraps it
// with the external collaborators (vocal separation, transcription,
// diarization, punctuation restoration) and runs every stage strictly in
// sequence, each collaborator scoped to its own stage. Artifacts are
// rendered in memory and published only after every stage has succeeded.
package scribe
