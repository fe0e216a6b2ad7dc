package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadIndexValid(t *testing.T) {
	var out bytes.Buffer
	idx, err := ReadIndex(strings.NewReader("2\n"), &out, 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 2 {
		t.Fatalf("expected index 2, got %d", idx)
	}
}

func TestReadIndexRepromptsOutOfRange(t *testing.T) {
	var out bytes.Buffer
	idx, err := ReadIndex(strings.NewReader("7\n3\n"), &out, 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 3 {
		t.Fatalf("expected index 3, got %d", idx)
	}
	if !strings.Contains(out.String(), "out of range") {
		t.Fatalf("expected out-of-range message, got %q", out.String())
	}
}

func TestReadIndexRepromptsNonNumeric(t *testing.T) {
	var out bytes.Buffer
	idx, err := ReadIndex(strings.NewReader("abc\n1\n"), &out, 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Fatalf("expected invalid-input message, got %q", out.String())
	}
}

func TestReadIndexEOF(t *testing.T) {
	var out bytes.Buffer
	if _, err := ReadIndex(strings.NewReader(""), &out, 5); err == nil {
		t.Fatal("expected an error on exhausted input")
	}
}

func TestReadIndexOptionalSkip(t *testing.T) {
	var out bytes.Buffer
	_, ok, err := ReadIndexOptional(strings.NewReader("-1\n"), &out, 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected -1 to skip selection")
	}
}

func TestReadIndexOptionalValid(t *testing.T) {
	var out bytes.Buffer
	idx, ok, err := ReadIndexOptional(strings.NewReader("0\n"), &out, 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || idx != 0 {
		t.Fatalf("expected index 0 selected, got idx=%d ok=%v", idx, ok)
	}
}

func TestReadIndexOptionalRepromptsOutOfRange(t *testing.T) {
	var out bytes.Buffer
	idx, ok, err := ReadIndexOptional(strings.NewReader("9\n4\n"), &out, 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || idx != 4 {
		t.Fatalf("expected index 4 selected, got idx=%d ok=%v", idx, ok)
	}
	if !strings.Contains(out.String(), "-1 to skip") {
		t.Fatalf("expected skip hint in reprompt, got %q", out.String())
	}
}
