// links.go locates wikilink spans in note content.
//
// A wikilink is [[target]] or [[target|display]]. The scanner reports every
// span with rune offsets so the editor (which addresses its buffer in runes)
// can hit-test the caret and pointer against link regions and place the
// caret inside the display segment for alias editing. Links inside fenced
// code blocks are ignored.
package note

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// linkPattern captures the target before an optional pipe and the display
// text after it. Targets cannot contain brackets or pipes; display text may
// contain further pipes, which stay part of the display.
var linkPattern = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)

// Span is one wikilink occurrence. All offsets are rune offsets into the
// scanned content; End is exclusive and covers the closing brackets.
type Span struct {
	Start int
	End   int

	// Target is the raw link target between the opening brackets and the
	// pipe (or closing brackets).
	Target string

	// Display is the alias text after the pipe. When HasAlias is false it
	// mirrors Target, because a bare link renders its target.
	Display  string
	HasAlias bool

	// DisplayStart and DisplayEnd bound the segment a display-text edit
	// operates on: the alias when present, the target otherwise.
	DisplayStart int
	DisplayEnd   int
}

// Contains reports whether a caret or pointer offset falls inside the link.
// The outer boundary positions do not count; a caret sitting just before
// [[ or just after ]] is outside the link.
func (s Span) Contains(offset int) bool {
	return offset > s.Start && offset < s.End
}

// Label returns the text a renderer shows for the link.
func (s Span) Label() string {
	if label := strings.TrimSpace(s.Display); label != "" {
		return label
	}
	return strings.TrimSpace(s.Target)
}

// Links scans content and returns every wikilink span in document order.
// Lines inside ``` fences are skipped, matching how the preview renders
// code blocks literally.
func Links(content string) []Span {
	if content == "" {
		return nil
	}

	var spans []Span
	inFence := false
	lineStart := 0 // rune offset of the current line
	for _, line := range strings.Split(content, "\n") {
		lineRunes := utf8.RuneCountInString(line)
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			lineStart += lineRunes + 1
			continue
		}
		if inFence {
			lineStart += lineRunes + 1
			continue
		}

		for _, m := range linkPattern.FindAllStringSubmatchIndex(line, -1) {
			spans = append(spans, spanFromMatch(line, lineStart, m))
		}
		lineStart += lineRunes + 1
	}
	return spans
}

// spanFromMatch converts one regexp match (byte indexes within line) into a
// Span with content-wide rune offsets.
func spanFromMatch(line string, lineStart int, m []int) Span {
	runeAt := func(byteIdx int) int {
		return lineStart + utf8.RuneCountInString(line[:byteIdx])
	}

	s := Span{
		Start:  runeAt(m[0]),
		End:    runeAt(m[1]),
		Target: line[m[2]:m[3]],
	}
	if m[4] >= 0 {
		s.HasAlias = true
		s.Display = line[m[4]:m[5]]
		s.DisplayStart = runeAt(m[4])
		s.DisplayEnd = runeAt(m[5])
	} else {
		s.Display = s.Target
		s.DisplayStart = runeAt(m[2])
		s.DisplayEnd = runeAt(m[3])
	}
	return s
}

// SpanAt returns the span containing the given rune offset.
func SpanAt(spans []Span, offset int) (Span, bool) {
	for _, s := range spans {
		if s.Contains(offset) {
			return s, true
		}
	}
	return Span{}, false
}

// EnsureAlias rewrites content so the span carries an explicit alias,
// duplicating the target as the initial display text. Returns the updated
// content and span. Content is returned unchanged when the span already has
// an alias, so callers can always edit the returned span's display segment.
func EnsureAlias(content string, s Span) (string, Span) {
	if s.HasAlias {
		return content, s
	}

	runes := []rune(content)
	if s.Start < 0 || s.End > len(runes) {
		return content, s
	}

	// [[target]] becomes [[target|target]].
	insertAt := s.DisplayEnd
	inserted := append([]rune{'|'}, []rune(s.Target)...)
	updated := make([]rune, 0, len(runes)+len(inserted))
	updated = append(updated, runes[:insertAt]...)
	updated = append(updated, inserted...)
	updated = append(updated, runes[insertAt:]...)

	targetLen := utf8.RuneCountInString(s.Target)
	s.HasAlias = true
	s.Display = s.Target
	s.DisplayStart = insertAt + 1
	s.DisplayEnd = insertAt + 1 + targetLen
	s.End += 1 + targetLen
	return string(updated), s
}
