package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		command string
		args    []string
		comment string
	}{
		{
			name:    "command with args and comment",
			input:   "M104 S150 ;set extruder temp for bed leveling",
			command: "M104",
			args:    []string{"S150"},
			comment: "set extruder temp for bed leveling",
		},
		{
			name:    "command only",
			input:   "G29",
			command: "G29",
			args:    []string{},
		},
		{
			name:    "leading and trailing whitespace",
			input:   "   G1 X10 Y20   ",
			command: "G1",
			args:    []string{"X10", "Y20"},
		},
		{
			name:    "comment only",
			input:   "; generated by slicer",
			comment: " generated by slicer",
		},
		{
			name:  "empty line",
			input: "",
		},
		{
			name:    "second marker is comment text",
			input:   "M117 hello ;a;b ;c",
			command: "M117",
			args:    []string{"hello"},
			comment: "a;b ;c",
		},
		{
			name:    "double space keeps empty token",
			input:   "G1  X1",
			command: "G1",
			args:    []string{"", "X1"},
		},
		{
			name:    "comment directly after command",
			input:   "G28;home",
			command: "G28",
			args:    []string{},
			comment: "home",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := Parse(tt.input, 7)
			assert.Equal(t, 7, line.Position)
			assert.Equal(t, tt.command, line.Command)
			assert.Equal(t, tt.comment, line.Comment)
			if tt.args == nil {
				assert.Nil(t, line.Args)
				assert.True(t, line.Codeless())
			} else {
				assert.Equal(t, tt.args, line.Args)
				assert.False(t, line.Codeless())
			}
		})
	}
}

func TestParseCommentIsolation(t *testing.T) {
	t.Parallel()
	inputs := []string{
		";",
		";;",
		"M104 S200;",
		"M104 S200 ; spaced ",
		"G1 X1 ;x;y;z",
		"  ;  leading",
	}
	for _, input := range inputs {
		idx := strings.IndexByte(input, CommentChar)
		assert.Equal(t, input[idx+1:], Parse(input, 0).Comment, input)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		line     *Line
		expected string
	}{
		{
			name:     "args and comment",
			line:     &Line{Command: "M104", Args: []string{"S215"}, Comment: "set extruder temp"},
			expected: "M104 S215 ;set extruder temp",
		},
		{
			name:     "empty comment still emits marker",
			line:     &Line{Command: "G29", Args: []string{}},
			expected: "G29 ;",
		},
		{
			name:     "codeless line",
			line:     &Line{Comment: " note"},
			expected: " ; note",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Format(tt.line))
			assert.Equal(t, tt.expected, tt.line.String())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	inputs := map[string]string{
		"G1 X10 Y20 F3000": "G1 X10 Y20 F3000",
		"  M140 S60  ":     "M140 S60",
		"G28":              "G28",
		"M104\tS200":       "M104\tS200",
	}
	for input, code := range inputs {
		out := Parse(input, 0).String()
		assert.Equal(t, code+" ;", out, input)
	}

	// lines with a comment reproduce the comment verbatim
	line := Parse("M109 S150 ;wait for bed leveling temp", 3)
	assert.Equal(t, "M109 S150 ;wait for bed leveling temp", line.String())
}
