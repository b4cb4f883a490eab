package util

import (
	"bytes"
	"strings"
)

// Excerpt renders the source lines between (startLine, startCol) and
// (endLine, endCol), each followed by a line of carets under the covered
// columns. Lines and columns are zero based; endCol is exclusive.
func Excerpt(src string, startLine, startCol, endLine, endCol int) string {
	lines := strings.Split(src, "\n")
	if startLine >= len(lines) {
		startLine = len(lines) - 1
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}
	if endLine < startLine {
		endLine = startLine
	}

	var out bytes.Buffer
	for i := startLine; i <= endLine; i++ {
		line := []rune(strings.TrimRight(lines[i], "\r"))

		from := 0
		if i == startLine {
			from = min(startCol, len(line))
		}
		to := len(line)
		if i == endLine {
			to = min(endCol, len(line))
		}
		if to <= from {
			to = from + 1
		}

		if i > startLine {
			out.WriteString("\n")
		}
		out.WriteString(string(line))
		out.WriteString("\n")
		out.WriteString(replaceVisibleWithSpaces(string(line[:from])))
		out.WriteString(strings.Repeat("^", to-from))
	}
	return out.String()
}

// replaceVisibleWithSpaces replaces all non-whitespace characters with spaces
// while preserving tabs for correct alignment.
func replaceVisibleWithSpaces(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		if c == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}
	return buf.String()
}
