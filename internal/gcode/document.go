package gcode

import (
	"fmt"
	"strings"
)

// Document is the mutable, position-indexed line buffer of one G-code file.
type Document struct {
	lines []string
	eol   string
}

// NewDocument splits text into lines. A single trailing line break does not
// produce an extra empty line. Text whose every line break is CRLF is written
// back as CRLF; otherwise stray carriage returns stay part of their line.
func NewDocument(text string) *Document {
	eol := "\n"
	if n := strings.Count(text, "\n"); n > 0 && strings.Count(text, "\r\n") == n {
		eol = "\r\n"
	}
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	if eol == "\r\n" {
		for i, line := range lines {
			lines[i] = strings.TrimSuffix(line, "\r")
		}
	}

	return &Document{lines: lines, eol: eol}
}

// Len returns the number of lines. It never changes after construction.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the raw text at pos.
func (d *Document) Line(pos int) (string, error) {
	if err := d.check(pos); err != nil {
		return "", err
	}
	return d.lines[pos], nil
}

// Lines returns a copy of the raw lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Set overwrites the line at pos with text.
func (d *Document) Set(pos int, text string) error {
	if err := d.check(pos); err != nil {
		return err
	}
	d.lines[pos] = text
	return nil
}

// String joins the lines, terminating every line (the last one included)
// with the document's line ending.
func (d *Document) String() string {
	var sb strings.Builder
	for _, line := range d.lines {
		sb.WriteString(line)
		sb.WriteString(d.eol)
	}
	return sb.String()
}

func (d *Document) check(pos int) error {
	if pos < 0 || pos >= len(d.lines) {
		return fmt.Errorf("%w: %d (document has %d lines)", ErrPosition, pos, len(d.lines))
	}
	return nil
}
