// compose.go places popover boxes over the base view.
//
// Lipgloss composes whole layouts but cannot stamp a block at an arbitrary
// cell, so overlayAt does the grid surgery directly: for each overlay row it
// splits the base row at the overlay's left edge with ANSI-aware truncation,
// inserts the overlay line, and re-attaches whatever part of the base row
// survives on the right. Rows outside the screen (including negative rows
// from a popover flipped above a link near the top) are skipped, which is
// the viewport-clamping the popover placement itself deliberately does not
// do.
package app

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// overlayAt composites overlay onto base at cell (x, y). Both strings are
// treated as line grids; width and height bound the base screen.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitScreenLines(base)
	overlayLines := splitScreenLines(overlay)
	overlayWidth := widestLine(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padToWidth(baseLines[row], width)

		left := ansi.Truncate(target, x, "")
		if leftWidth := ansi.StringWidth(left); leftWidth < x {
			left += strings.Repeat(" ", x-leftWidth)
		}

		overlayLine := padToWidth(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = cutLeft(target, pos)
			if gap := width - pos - ansi.StringWidth(right); gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// cutLeft drops the leftmost n cells of a line. Escape sequences are copied
// through untouched so styling that started left of the cut still applies to
// what remains. A double-width rune straddling the cut becomes a space.
func cutLeft(s string, n int) string {
	if n <= 0 {
		return s
	}
	var b strings.Builder
	remaining := n
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			j := i + 1
			if j < len(s) && s[j] == '[' {
				j++
				for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
					j++
				}
				if j < len(s) {
					j++
				}
			}
			b.WriteString(s[i:j])
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if remaining > 0 {
			remaining -= runewidth.RuneWidth(r)
			if remaining < 0 {
				b.WriteByte(' ')
				remaining = 0
			}
		} else {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

// splitScreenLines splits on newlines, returning at least one element.
func splitScreenLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// widestLine returns the visual width of the widest line.
func widestLine(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// padToWidth pads s with spaces so its visual width is at least width.
func padToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
