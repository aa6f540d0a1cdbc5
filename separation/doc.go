// Package separation isolates the vocal stem of a recording with the
// demucs command line tool before recognition. Separation is best effort:
// when it fails the original audio is used.
//
// demucs loads and releases its model inside the subprocess, so a
// Separator holds no model state between calls.
package separation
