package wav

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateAcceptsFinalizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good.wav")

	w, err := NewWriter(path, 2, 44100)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	for i := 0; i < 500; i++ {
		if err := w.WriteFrame(int16(i%1000), int16(i%1000)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if err := Validate(path); err != nil {
		t.Fatalf("expected valid file, got %v", err)
	}
}

func TestValidateRejectsBadRIFF(t *testing.T) {
	path := writeFile(t, "bad_riff.wav", []byte("XXXX\x24\x00\x00\x00WAVE"))

	err := Validate(path)
	if err == nil || !strings.Contains(err.Error(), "RIFF") {
		t.Fatalf("expected RIFF error, got %v", err)
	}
}

func TestValidateRejectsBadWAVE(t *testing.T) {
	path := writeFile(t, "bad_wave.wav", []byte("RIFF\x24\x00\x00\x00XXXX"))

	err := Validate(path)
	if err == nil || !strings.Contains(err.Error(), "WAVE") {
		t.Fatalf("expected WAVE error, got %v", err)
	}
}

func TestValidateRejectsTruncatedFile(t *testing.T) {
	path := writeFile(t, "small.wav", []byte("RIFF"))

	err := Validate(path)
	if err == nil || !strings.Contains(err.Error(), "too small") {
		t.Fatalf("expected too-small error, got %v", err)
	}
}

func TestValidateRejectsHeadersOnly(t *testing.T) {
	header := []byte("RIFF\x28\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x44\xac\x00\x00\x88\x58\x01\x00\x02\x00\x10\x00data\x00\x00\x00\x00")
	path := writeFile(t, "headers_only.wav", header)

	err := Validate(path)
	if err == nil || !strings.Contains(err.Error(), "no audio data") {
		t.Fatalf("expected no-audio-data error, got %v", err)
	}
}
