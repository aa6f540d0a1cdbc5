package scribe

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"lukechampine.com/blake3"

	"github.com/kbukum/diarscribe/errors"
)

// Fingerprint returns the hex BLAKE3-256 digest of the file at path.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound("input file", path)
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return fingerprintReader(f)
}

func fingerprintReader(r io.Reader) (string, error) {
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("calculating blake3 hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
