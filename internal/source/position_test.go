package source

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FirstCharacter(t *testing.T) {
	pos := Resolve([]byte(`gettext("Hello")`), 0)
	assert.Equal(t, Position{Line: 1, Column: 1}, pos)
	assert.Equal(t, "(1,1)", pos.String())
}

func TestResolve_AfterNewlines(t *testing.T) {
	text := []byte("class A\n{\n    _(\"x\");\n}\n")
	off := bytes.Index(text, []byte("_("))

	pos := Resolve(text, off)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 5, pos.Column)
}

func TestResolve_OffsetOnNewline(t *testing.T) {
	text := []byte("ab\ncd")
	// The newline itself still belongs to line 1.
	assert.Equal(t, Position{Line: 1, Column: 3}, Resolve(text, 2))
	assert.Equal(t, Position{Line: 2, Column: 1}, Resolve(text, 3))
}

func TestResolve_CountsCharactersNotBytes(t *testing.T) {
	text := []byte("// héllo\nvar s = \"ü\"; Tr(s);")
	off := bytes.Index(text, []byte("Tr("))

	pos := Resolve(text, off)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 14, pos.Column)
}

func TestResolve_SupplementaryCharactersTakeTwoColumns(t *testing.T) {
	text := []byte("s = \"\U0001F600\"; Tr(s);")
	off := bytes.Index(text, []byte("Tr("))

	// 8 BMP characters plus one surrogate pair
	assert.Equal(t, Position{Line: 1, Column: 11}, Resolve(text, off))
	assert.Equal(t, Resolve(text, off), NewLineIndex(text).Resolve(off))
}

func TestResolve_ClampsOutOfRange(t *testing.T) {
	text := []byte("a\nb")
	assert.Equal(t, Position{Line: 1, Column: 1}, Resolve(text, -4))
	assert.Equal(t, Position{Line: 2, Column: 2}, Resolve(text, 99))
}

func TestResolve_LineMatchesNewlineCount(t *testing.T) {
	text := []byte("x\n\nyy\r\nz\n\n")
	for o := 0; o <= len(text); o++ {
		want := 1 + bytes.Count(text[:o], []byte("\n"))
		assert.Equal(t, want, Resolve(text, o).Line, "offset %d", o)
	}
}

func TestLineIndex_MatchesResolve(t *testing.T) {
	text := []byte("namespace N {\n\tclass C {\n\t\tstring s = _(\"ä\");\n\t}\n}")
	idx := NewLineIndex(text)
	for o := 0; o <= len(text); o++ {
		assert.Equal(t, Resolve(text, o), idx.Resolve(o), "offset %d", o)
	}
}
