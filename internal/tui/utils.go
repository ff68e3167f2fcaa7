package tui

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase capitalizes a state or status label for display
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// truncateMiddle shortens s to width cells, keeping both ends visible
func truncateMiddle(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}

	head := (width - 1) / 2
	tail := width - 1 - head

	runes := []rune(s)
	end := len(runes)
	for w := 0; end > 0; end-- {
		rw := runewidth.RuneWidth(runes[end-1])
		if w+rw > tail {
			break
		}
		w += rw
	}
	return runewidth.Truncate(s, head, "") + "…" + string(runes[end:])
}
