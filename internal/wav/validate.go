package wav

import (
	"bytes"
	"fmt"
	"os"
)

const headerSize = 44

// Validate checks that the file at path starts with a structurally valid WAV
// header and contains audio data beyond it.
func Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var header [headerSize]byte
	n, err := f.Read(header[:])
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	if n < 12 {
		return fmt.Errorf("file too small to be a valid WAV file (%d bytes)", n)
	}
	if !bytes.Equal(header[0:4], []byte("RIFF")) {
		return fmt.Errorf("invalid RIFF header: expected 'RIFF', got %q", header[0:4])
	}
	if !bytes.Equal(header[8:12], []byte("WAVE")) {
		return fmt.Errorf("invalid WAVE identifier: expected 'WAVE', got %q", header[8:12])
	}
	if n >= 16 && !bytes.Equal(header[12:16], []byte("fmt ")) {
		return fmt.Errorf("format chunk identifier not found")
	}

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() <= headerSize {
		return fmt.Errorf("file contains only headers, no audio data")
	}

	return nil
}
