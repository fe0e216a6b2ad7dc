// Package wav persists 16-bit PCM frames as a WAV file whose length-dependent
// header fields are back-patched on finalize.
package wav

import (
	"errors"
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	gwav "github.com/go-audio/wav"
)

var (
	// ErrFinalized is returned by WriteFrame once Finalize has been called.
	ErrFinalized = errors.New("wav: write after finalize")
	// ErrDoubleFinalize is returned by a second call to Finalize.
	ErrDoubleFinalize = errors.New("wav: already finalized")
	// ErrFinalizeFailed marks a failure while patching the header, as
	// opposed to a mid-stream sample write failure.
	ErrFinalizeFailed = errors.New("wav: header finalize failed")
)

// Frames are staged here before being handed to the encoder in one batch.
const flushThreshold = 4096

// Writer appends stereo 16-bit PCM frames to a growing WAV file. It starts
// open, accepts writes until Finalize, and is finalized exactly once.
type Writer struct {
	path      string
	file      *os.File
	enc       *gwav.Encoder
	format    *gaudio.Format
	pending   []int
	finalized bool
}

// NewWriter creates the output file and prepares a 16-bit PCM encoder for it.
func NewWriter(path string, channels, sampleRate int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &Writer{
		path:   path,
		file:   f,
		enc:    gwav.NewEncoder(f, sampleRate, 16, channels, 1),
		format: &gaudio.Format{NumChannels: channels, SampleRate: sampleRate},
	}, nil
}

// Path returns the output file location.
func (w *Writer) Path() string {
	return w.path
}

// WriteFrame appends one stereo pair, left then right.
func (w *Writer) WriteFrame(left, right int16) error {
	if w.finalized {
		return ErrFinalized
	}
	w.pending = append(w.pending, int(left), int(right))
	if len(w.pending) >= flushThreshold {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	buf := &gaudio.IntBuffer{Format: w.format, Data: w.pending, SourceBitDepth: 16}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	w.pending = w.pending[:0]
	return nil
}

// Finalize flushes staged frames, patches the RIFF length fields and closes
// the file. After Finalize the writer accepts no further frames.
func (w *Writer) Finalize() error {
	if w.finalized {
		return ErrDoubleFinalize
	}
	w.finalized = true

	if err := w.flush(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("%w: %v", ErrFinalizeFailed, err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFinalizeFailed, err)
	}
	return nil
}
