package source

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a 1-based line/column location inside a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String renders the position the way catalog comments expect it: "(line,column)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Resolve converts a byte offset into a Position.
// Offsets outside [0, len(text)] are clamped.
func Resolve(text []byte, offset int) Position {
	offset = clamp(offset, len(text))

	line := 1
	lastNL := -1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return Position{Line: line, Column: columnAt(text, lastNL, offset)}
}

// LineIndex caches newline offsets of one file so repeated lookups are a
// binary search instead of a rescan. Results match Resolve.
type LineIndex struct {
	text     []byte
	newlines []int
}

// NewLineIndex builds the newline table for text.
func NewLineIndex(text []byte) *LineIndex {
	idx := &LineIndex{text: text}
	for i, b := range text {
		if b == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

// Resolve returns the Position of offset.
func (l *LineIndex) Resolve(offset int) Position {
	offset = clamp(offset, len(l.text))

	// number of newlines strictly before offset
	n := sort.SearchInts(l.newlines, offset)
	lastNL := -1
	if n > 0 {
		lastNL = l.newlines[n-1]
	}
	return Position{Line: n + 1, Column: columnAt(l.text, lastNL, offset)}
}

// columnAt counts UTF-16 code units between the last newline and offset,
// so characters outside the BMP take two columns.
func columnAt(text []byte, lastNL, offset int) int {
	col := 1
	for seg := text[lastNL+1 : offset]; len(seg) > 0; {
		r, size := utf8.DecodeRune(seg)
		if n := utf16.RuneLen(r); n > 0 {
			col += n
		} else {
			col++
		}
		seg = seg[size:]
	}
	return col
}

func clamp(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
