// Package transcription defines the contract for the recognizer and
// forced-aligner collaborators: audio in, word-level timestamps out.
//
// # Backends
//
//   - transcription/whisperx: the whisperx command line tool, or a JSON
//     result it produced earlier
//   - transcription/whisper: a faster-whisper HTTP sidecar with word
//     timestamps enabled
package transcription
