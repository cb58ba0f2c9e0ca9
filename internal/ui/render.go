package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const ellipsis = "…"

// styledLine is one row of the menu view. Plain lines are styled at
// render time; raw lines already carry ANSI escapes and pass through.
// A line with a prefix style renders its first prefixLen runes with it.
type styledLine struct {
	text        string
	style       *lipgloss.Style
	prefixStyle *lipgloss.Style
	prefixLen   int
	raw         bool
}

func (l styledLine) render() string {
	if l.raw {
		return l.text
	}
	runes := []rune(l.text)
	if l.prefixLen <= 0 || l.prefixLen >= len(runes) {
		return renderWith(l.style, l.text)
	}
	return renderWith(l.prefixStyle, string(runes[:l.prefixLen])) +
		renderWith(l.style, string(runes[l.prefixLen:]))
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.render()
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width cells, ending in an ellipsis when it
// had to cut. Escape sequences do not count towards the width.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, ellipsis)
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	out := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		out[i] = line
	}
	return out
}

// limitHeight keeps the first height lines, replacing the last kept line
// with an ellipsis when anything was dropped.
func limitHeight(lines []styledLine, height int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	kept := append([]styledLine(nil), lines[:height-1]...)
	return append(kept, styledLine{text: ellipsis})
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// padRight fills text with spaces up to width cells.
func padRight(text string, width int) string {
	if gap := width - ansi.StringWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
