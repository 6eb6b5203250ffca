package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites overlay on top of base at cell (x, y). Both are
// line-based grids; the overlay is clipped to width x height, including when
// x or y is negative.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for i, line := range splitLines(overlay) {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		if x < 0 {
			line = ansi.TruncateLeft(line, -x, "")
		}
		col := max(x, 0)
		if col >= width {
			continue
		}
		line = ansi.Truncate(line, width-col, "")

		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, col, "")
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		pos := col + ansi.StringWidth(line)
		right := ansi.TruncateLeft(target, pos, "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

// canvas returns height blank lines of width cells.
func canvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = row
	}
	return strings.Join(lines, "\n")
}

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
