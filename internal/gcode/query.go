package gcode

import (
	"fmt"
	"sort"
	"strings"
)

// Field names a Line field usable in a Where predicate.
type Field string

const (
	FieldCommand Field = "command"
	FieldArgs    Field = "args"
	FieldComment Field = "comment"
	// FieldCommentText is the comment with surrounding whitespace trimmed,
	// so ";set temp" and "; set temp" both match "set temp".
	FieldCommentText Field = "comment_text"
)

// Where is a field-equality predicate. Every key must equal the line's
// value; fields that are not listed are unconstrained. FieldArgs compares
// against the arguments joined by single spaces and never matches a
// codeless line, so FieldArgs "" selects commands given without arguments.
type Where map[Field]string

// Match reports whether l satisfies every entry of w.
// An unknown field never matches.
func (w Where) Match(l *Line) bool {
	for field, want := range w {
		got, ok := l.field(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (w Where) String() string {
	if len(w) == 0 {
		return "{}"
	}
	fields := make([]string, 0, len(w))
	for field := range w {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s=%q", field, w[Field(field)])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (l *Line) field(f Field) (string, bool) {
	switch f {
	case FieldCommand:
		return l.Command, true
	case FieldArgs:
		// a codeless line has no argument list to compare
		if l.Codeless() {
			return "", false
		}
		return strings.Join(l.Args, " "), true
	case FieldComment:
		return l.Comment, true
	case FieldCommentText:
		return strings.TrimSpace(l.Comment), true
	default:
		return "", false
	}
}

// Find returns, in position order, the parsed lines whose raw text contains
// term and that satisfy where. Lines are parsed on demand; only lines
// containing term are parsed at all.
func (d *Document) Find(term string, where Where) []*Line {
	var results []*Line
	for pos, raw := range d.lines {
		if !strings.Contains(raw, term) {
			continue
		}
		line := Parse(raw, pos)
		if where.Match(line) {
			results = append(results, line)
		}
	}
	return results
}

// FindOne returns the first line Find would return, or an error wrapping
// ErrNotFound.
func (d *Document) FindOne(term string, where Where) (*Line, error) {
	results := d.Find(term, where)
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: term %q where %s", ErrNotFound, term, where)
	}
	return results[0], nil
}
