package extractor

import (
	"errors"
	"strings"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoArguments  = errors.New("no arguments found")
	ErrNotALiteral  = errors.New("first argument is not a string literal")
)

// Diagnostic codes, stable across runs so cached results can be restored.
const (
	CodeFileNotFound = "file_not_found"
	CodeNoArguments  = "no_arguments"
	CodeNotALiteral  = "not_a_literal"
)

// verbatimMarker prefixes C# verbatim strings: @"C:\path".
const verbatimMarker = '@'

// Normalize returns the catalog text of a string-literal argument: the
// literal exactly as written, minus one leading verbatim marker.
// Escape sequences are left alone; the catalog wants raw literal syntax.
func Normalize(arg Argument) (string, error) {
	switch arg.Kind {
	case ArgStringLiteral, ArgVerbatimLiteral:
		if len(arg.Text) > 0 && arg.Text[0] == verbatimMarker {
			return arg.Text[1:], nil
		}
		return arg.Text, nil
	default:
		return "", ErrNotALiteral
	}
}

// classifyLiteral maps a literal node type and its text to an ArgKind.
// UTF-8 literals ("abc"u8) are byte spans, not strings, and do not qualify.
func classifyLiteral(nodeType, text string) ArgKind {
	switch nodeType {
	case "string_literal", "raw_string_literal":
		if hasUTF8Suffix(text) {
			return ArgOther
		}
		return ArgStringLiteral
	case "verbatim_string_literal":
		if hasUTF8Suffix(text) {
			return ArgOther
		}
		return ArgVerbatimLiteral
	}
	return ArgOther
}

func hasUTF8Suffix(text string) bool {
	return strings.HasSuffix(text, "u8") || strings.HasSuffix(text, "U8")
}
