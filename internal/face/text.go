package face

import "github.com/sweeney/desk-bot/internal/display"

// Text overlay layout. 21 columns by 6 lines, matching the original device's
// small-font budget on a 128x64 panel. Text beyond the budget is truncated.
const (
	Columns  = 21
	MaxLines = 6

	textX      = 1
	textTopY   = 2
	lineHeight = 10
)

// RenderText lays out text left-to-right, wrapping at Columns and truncating
// after MaxLines, then flushes. Explicit newlines force a line break without
// consuming a column slot. Empty input renders a blank frame but still
// clears and flushes so the overlay takes over the screen.
func RenderText(d display.Driver, text string) error {
	d.Clear()
	for i, line := range WrapText(text) {
		d.Print(textX, textTopY+i*lineHeight, line)
	}
	return d.Flush()
}

// WrapText splits text into at most MaxLines lines of at most Columns runes.
// Runes past the budget are dropped.
func WrapText(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	line := make([]rune, 0, Columns)

	flush := func() bool {
		lines = append(lines, string(line))
		line = line[:0]
		return len(lines) < MaxLines
	}

	for _, r := range text {
		if r == '\n' {
			if !flush() {
				return lines
			}
			continue
		}
		if len(line) == Columns {
			if !flush() {
				return lines
			}
		}
		line = append(line, r)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
