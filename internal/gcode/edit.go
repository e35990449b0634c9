package gcode

import "fmt"

// RewriteArg sets l.Args[index] to value and writes the reformatted line
// back at l.Position.
func (d *Document) RewriteArg(l *Line, index int, value string) error {
	if index < 0 || index >= len(l.Args) {
		return fmt.Errorf("%w: %d on line %d (%d args)", ErrArgIndex, index, l.Position, len(l.Args))
	}
	l.Args[index] = value
	return d.Set(l.Position, l.String())
}

// CommentOut replaces the line at l.Position with l's canonical text behind
// a comment marker.
func (d *Document) CommentOut(l *Line) error {
	return d.Set(l.Position, string(CommentChar)+" "+l.String())
}

// ReplaceLine overwrites the line at pos with text verbatim.
func (d *Document) ReplaceLine(pos int, text string) error {
	return d.Set(pos, text)
}
