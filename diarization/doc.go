// Package diarization defines the contract for the speaker diarization
// collaborator: audio in, speaker turns out.
//
// Backends report records they could not parse as skipped
// MALFORMED_TIMELINE_RECORD errors instead of failing, since a partial
// timeline is still usable.
//
// # Backends
//
//   - diarization/rttm: an RTTM file, optionally produced by running an
//     external diarizer command first
//   - diarization/pyannote: a pyannote HTTP sidecar
package diarization
