package catalog

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"getthetext/internal/extractor"
)

// Writer renders catalog records to one stream and diagnostics to another.
// It is safe for concurrent use; each entry is written as a unit.
type Writer struct {
	mu      sync.Mutex
	out     *bufio.Writer
	errOut  io.Writer
	errTone *color.Color

	records     int
	diagnostics int
}

// NewWriter creates a Writer. useColor forces diagnostics to be highlighted
// (or not) regardless of terminal detection.
func NewWriter(out, errOut io.Writer, useColor bool) *Writer {
	tone := color.New(color.FgRed)
	if useColor {
		tone.EnableColor()
	} else {
		tone.DisableColor()
	}
	return &Writer{
		out:     bufio.NewWriter(out),
		errOut:  errOut,
		errTone: tone,
	}
}

// WriteRecord emits one catalog entry:
//
//	# file(line,column)
//	msgid "text"
//	msgstr ""
func (w *Writer) WriteRecord(rec extractor.CatalogRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintf(w.out, "# %s%s\nmsgid %s\nmsgstr \"\"\n\n", rec.File, rec.Position, rec.RawText); err != nil {
		return fmt.Errorf("write catalog record: %w", err)
	}
	w.records++
	return nil
}

// WriteDiagnostic reports a malformed marker site.
func (w *Writer) WriteDiagnostic(d extractor.Diagnostic) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.diagnostics++
	return w.writeError(fmt.Sprintf("%s%s => %s", d.File, d.Position, d.Context), d.Message)
}

// FileNotFound reports an input path that does not exist.
func (w *Writer) FileNotFound(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.diagnostics++
	return w.writeError(fmt.Sprintf("File '%s' not found", path))
}

// FileFailed reports an input that exists but could not be processed.
func (w *Writer) FileFailed(path string, cause error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.diagnostics++
	return w.writeError(fmt.Sprintf("File '%s' could not be processed", path), cause.Error())
}

// WriteResult emits every event of a file result in order.
func (w *Writer) WriteResult(res *extractor.FileResult) error {
	for _, ev := range res.Events {
		var err error
		switch {
		case ev.Record != nil:
			err = w.WriteRecord(*ev.Record)
		case ev.Diagnostic != nil:
			err = w.WriteDiagnostic(*ev.Diagnostic)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes buffered catalog output. Diagnostics are unbuffered, so
// callers should flush after each file to keep both streams in step.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Flush()
}

// Counts returns how many records and diagnostics were written.
func (w *Writer) Counts() (records, diagnostics int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.records, w.diagnostics
}

// writeError prints highlighted lines followed by a blank line. Caller holds mu.
func (w *Writer) writeError(lines ...string) error {
	for _, l := range lines {
		if _, err := w.errTone.Fprintln(w.errOut, l); err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.errOut); err != nil {
		return fmt.Errorf("write diagnostic: %w", err)
	}
	return nil
}
