package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/pipeline"
)

var (
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	removedStyle = color.New(color.FgRed)
	addedStyle   = color.New(color.FgGreen)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
)

// FormatChanges renders the changes made to filename, one block per change,
// with 1-based line numbers.
func FormatChanges(filename string, changes []pipeline.Change) string {
	maxLineNumWidth := 0
	for _, c := range changes {
		if w := calculateMaxLineNumWidth(c.Position + 1); w > maxLineNumWidth {
			maxLineNumWidth = w
		}
	}
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var builder strings.Builder
	for _, c := range changes {
		builder.WriteString(header(c.Rule, maxLineNumWidth, filename, c.Position+1))
		builder.WriteString(lineStyle.Sprintf("%s|\n", padding))
		builder.WriteString(changedLine(c, maxLineNumWidth))
		builder.WriteString(lineStyle.Sprintf("%s|\n", padding))
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatResult renders the changes followed by the rules that were skipped.
func FormatResult(filename string, result *pipeline.Result) string {
	if result == nil {
		return ""
	}

	out := FormatChanges(filename, result.Changes)
	for _, rule := range result.Skipped {
		out += warningStyle.Sprint("skipped: ") + ruleStyle.Sprintf("%s", rule) +
			fmt.Sprintf(" (%s)\n", filename)
	}
	return out
}

// FormatError renders a file that could not be processed.
func FormatError(filename string, err error) string {
	return errorStyle.Sprint("error: ") + fileStyle.Sprint(filename) + "\n" +
		lineStyle.Sprint(" = ") + fmt.Sprintf("%v\n", err)
}

func header(rule string, maxLineNumWidth int, filename string, line int) string {
	var endString string
	endString = ruleStyle.Sprintf("change: %s\n", rule)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d\n", filename, line)

	return endString
}

func changedLine(c pipeline.Change, maxLineNumWidth int) string {
	lineNum := fmt.Sprintf("%*d", maxLineNumWidth, c.Position+1)

	var endString string
	endString = lineStyle.Sprintf("%s ", lineNum) + removedStyle.Sprintf("- %s\n", c.Before)
	endString += lineStyle.Sprintf("%s ", lineNum) + addedStyle.Sprintf("+ %s\n", c.After)
	return endString
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}
