package views

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate cuts s to at most width terminal cells
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// joinFit joins name and detail on one line of at most width cells.
// The name keeps priority; the detail is shortened first.
func joinFit(name, detail string, width int) (string, string) {
	name = truncate(name, width)
	rest := width - runewidth.StringWidth(name) - 2
	if detail == "" || rest < 4 {
		return name, ""
	}
	return name, truncate(detail, rest)
}

// padRight pads s with spaces to width cells
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
