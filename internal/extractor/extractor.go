package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"getthetext/internal/source"
)

// Extractor finds translatable strings in source files using a
// language-specific site collector and a fixed marker configuration.
type Extractor struct {
	collector SiteCollector
	langName  string
	markers   Markers
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string, markers Markers) (*Extractor, error) {
	var collector SiteCollector
	switch lang {
	case "csharp", "cs", "c#":
		collector = &CSharpCollector{}
		lang = "csharp"
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{collector: collector, langName: lang, markers: markers}, nil
}

// Markers returns the marker configuration the extractor matches against.
func (e *Extractor) Markers() Markers {
	return e.markers
}

// Language returns the canonical language name.
func (e *Extractor) Language() string {
	return e.langName
}

// ExtractFromFile reads and extracts a single file. A missing file is
// reported as ErrFileNotFound so callers can skip it and continue.
func (e *Extractor) ExtractFromFile(ctx context.Context, path string) (*FileResult, error) {
	sourceCode, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractSource(ctx, path, sourceCode)
}

// ReadSource reads a source file, mapping a missing file to ErrFileNotFound.
func ReadSource(path string) ([]byte, error) {
	sourceCode, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return sourceCode, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExtractSource parses sourceCode and runs the extraction pass over it.
// path is only used to label records and diagnostics. A leading byte order
// mark is not part of the text and does not shift line 1 columns.
func (e *Extractor) ExtractSource(ctx context.Context, path string, sourceCode []byte) (*FileResult, error) {
	sourceCode = bytes.TrimPrefix(sourceCode, utf8BOM)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.collector.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	defer tree.Close()

	sites := e.collector.CollectSites(tree.RootNode(), sourceCode)
	return ExtractSites(e.markers, path, sourceCode, sites), nil
}

// ExtractSites runs the matching pass over already-classified sites.
//
// Call sites are handled first, then attribute sites, each in the order
// given. Every site that matches a marker yields exactly one record or one
// diagnostic; sites that do not match yield nothing. Records carry file as
// given, diagnostics carry its absolute form.
func ExtractSites(markers Markers, file string, sourceCode []byte, sites []Site) *FileResult {
	res := &FileResult{File: file}
	lines := source.NewLineIndex(sourceCode)
	diagFile := absPath(file)

	var attributes []Site
	for _, s := range sites {
		if s.Kind == SiteAttribute {
			attributes = append(attributes, s)
			continue
		}
		if markers.MatchesMethod(s) {
			extractSite(res, lines, file, diagFile, s)
		}
	}
	for _, s := range attributes {
		if markers.MatchesAttribute(s) {
			extractSite(res, lines, file, diagFile, s)
		}
	}
	return res
}

func extractSite(res *FileResult, lines *source.LineIndex, file, diagFile string, s Site) {
	pos := lines.Resolve(s.Offset)

	if len(s.Args) == 0 {
		res.addDiagnostic(Diagnostic{
			File:     diagFile,
			Position: pos,
			Context:  s.Text,
			Message:  fmt.Sprintf("Translation %s found but no arguments found", s.Kind),
			Code:     CodeNoArguments,
		})
		return
	}

	text, err := Normalize(s.Args[0])
	if err != nil {
		res.addDiagnostic(Diagnostic{
			File:     diagFile,
			Position: pos,
			Context:  s.Text,
			Message:  fmt.Sprintf("Translation %s found but the first argument is not a string literal", s.Kind),
			Code:     CodeNotALiteral,
		})
		return
	}

	res.addRecord(CatalogRecord{File: file, Position: pos, RawText: text})
}

func absPath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	return abs
}
