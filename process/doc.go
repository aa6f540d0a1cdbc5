// Package process runs the external command-line collaborators (whisperx,
// demucs, diarizer scripts) as subprocesses.
//
// A cancelled context sends SIGTERM to the whole process group and
// escalates to SIGKILL after the grace period, so model workers spawned by
// the command are torn down with it. Failures are reported as application
// errors naming the binary.
package process
