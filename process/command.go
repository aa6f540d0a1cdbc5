package process

import (
	"io"
	"time"
)

// Command is one invocation of an external model tool such as whisperx,
// demucs or a diarization script.
type Command struct {
	// Binary is looked up on PATH unless it contains a separator.
	Binary string
	Args   []string
	// Dir defaults to the current directory.
	Dir string
	// Env entries (key=value) are appended to os.Environ.
	Env   []string
	Stdin io.Reader
	// GracePeriod between SIGTERM and SIGKILL when ctx is cancelled.
	// Zero means 5s.
	GracePeriod time.Duration
	// OnStderr receives each stderr line as it is written. Model tools
	// report progress there.
	OnStderr func(line string)
}
