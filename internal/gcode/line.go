package gcode

import "strings"

// CommentChar starts a trailing comment on a G-code line.
const CommentChar = ';'

// Line is a parsed view of one line of a Document.
//
// A Line is never cached by the Document. Once the Document is written at
// Position the field values may be stale, but Position stays valid for
// further edits because no edit adds or removes lines.
type Line struct {
	Position int
	Command  string
	// Args is nil when the line has no code portion at all.
	Args    []string
	Comment string
}

// Parse splits raw into command, arguments and comment. It never fails.
//
// Everything after the first CommentChar is comment text, including any
// further CommentChar. The code portion is trimmed and split on single
// spaces, so consecutive spaces yield empty argument tokens.
func Parse(raw string, pos int) *Line {
	line := &Line{Position: pos}

	code := raw
	if idx := strings.IndexByte(raw, CommentChar); idx >= 0 {
		code = raw[:idx]
		line.Comment = raw[idx+1:]
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return line
	}

	tokens := strings.Split(code, " ")
	line.Command = tokens[0]
	line.Args = tokens[1:]
	return line
}

// Codeless reports whether the line had no command when it was parsed.
func (l *Line) Codeless() bool {
	return l.Command == "" && l.Args == nil
}

// String formats the line back into G-code text. The comment marker is
// always emitted, even for an empty comment.
func (l *Line) String() string {
	var sb strings.Builder
	sb.WriteString(l.Command)
	for _, arg := range l.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg)
	}
	sb.WriteByte(' ')
	sb.WriteByte(CommentChar)
	sb.WriteString(l.Comment)
	return sb.String()
}

// Format is the free-function form of (*Line).String.
func Format(l *Line) string {
	return l.String()
}
