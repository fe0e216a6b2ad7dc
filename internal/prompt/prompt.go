// Package prompt reads device index selections from a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadIndex reads an index in [0, max) from r, re-prompting on invalid
// input.
func ReadIndex(r io.Reader, w io.Writer, max int) (int, error) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "Enter index: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}

		idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(w, "Invalid input. Please enter a number.")
			continue
		}
		if idx < 0 || idx >= max {
			fmt.Fprintf(w, "Index out of range. Please enter a number between 0 and %d\n", max-1)
			continue
		}
		return idx, nil
	}
}

// ReadIndexOptional behaves like ReadIndex but also accepts -1 to skip, in
// which case ok is false.
func ReadIndexOptional(r io.Reader, w io.Writer, max int) (idx int, ok bool, err error) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "Enter index: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, false, err
			}
			return 0, false, io.ErrUnexpectedEOF
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "-1" {
			return 0, false, nil
		}

		idx, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintln(w, "Invalid input. Please enter a number or -1 to skip.")
			continue
		}
		if idx < 0 || idx >= max {
			fmt.Fprintf(w, "Index out of range. Please enter a number between 0 and %d (or -1 to skip)\n", max-1)
			continue
		}
		return idx, true, nil
	}
}
