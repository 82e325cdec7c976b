// Package verify checks a completed copy against its source.
package verify

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Copy validates that dest matches src: the size check is always on, the
// SHA-256 comparison only when hash is set.
func Copy(src, dest string, expectedSize int64, hash bool) error {
	destInfo, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("destination file not found: %w", err)
	}

	if destInfo.Size() != expectedSize {
		return fmt.Errorf("size mismatch: expected %d, got %d", expectedSize, destInfo.Size())
	}

	if !hash {
		return nil
	}

	srcHash, err := hashFile(src)
	if err != nil {
		return fmt.Errorf("failed to hash source: %w", err)
	}
	destHash, err := hashFile(dest)
	if err != nil {
		return fmt.Errorf("failed to hash destination: %w", err)
	}

	if srcHash != destHash {
		return fmt.Errorf("hash mismatch: src=%s, dest=%s", srcHash, destHash)
	}
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
