package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// fit shortens each line of value to at most width terminal cells, adding an
// ellipsis where it cuts. Widths follow the display, not the byte or rune
// count, so "°" and wide glyphs are measured correctly.
func fit(value string, width int) string {
	if width <= 0 {
		return ""
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if runewidth.StringWidth(line) > width {
			lines[i] = runewidth.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}
