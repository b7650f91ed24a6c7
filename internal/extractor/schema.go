package extractor

import "getthetext/internal/source"

// SiteKind separates invocation sites from attribute applications.
type SiteKind int

const (
	SiteCall SiteKind = iota
	SiteAttribute
)

func (k SiteKind) String() string {
	if k == SiteAttribute {
		return "attribute"
	}
	return "method"
}

// CalleeKind is the shape of the expression naming a call site.
// Only identifiers and member accesses can match a marker name.
type CalleeKind int

const (
	CalleeOther CalleeKind = iota
	CalleeIdentifier
	CalleeMemberAccess
)

// ArgKind classifies the first child node of an argument.
type ArgKind int

const (
	ArgOther ArgKind = iota
	ArgStringLiteral
	ArgVerbatimLiteral
)

// Argument is one argument of a site, reduced to what normalization needs.
type Argument struct {
	Kind ArgKind `json:"kind"`
	Text string  `json:"text"` // source text of the argument's first child node
}

// Site is a call expression or attribute application found in a tree.
// It is classified once, when collected, and never re-inspected.
type Site struct {
	Kind   SiteKind   `json:"kind"`
	Callee CalleeKind `json:"callee"`
	Name   string     `json:"name"`   // simple name: last segment of the callee or attribute name
	Offset int        `json:"offset"` // start byte of the site node
	Text   string     `json:"text"`   // full source text of the site node
	Args   []Argument `json:"args"`
}

// CatalogRecord is one extracted translatable string.
type CatalogRecord struct {
	File     string          `json:"file"`
	Position source.Position `json:"position"`
	RawText  string          `json:"raw_text"` // literal text including quotes, escapes untouched
}

// Diagnostic describes a marker site whose shape could not be extracted.
type Diagnostic struct {
	File     string          `json:"file"`
	Position source.Position `json:"position"`
	Context  string          `json:"context"` // source text of the offending site
	Message  string          `json:"message"`
	Code     string          `json:"code"`
}

// Err maps the diagnostic back to its sentinel error.
func (d Diagnostic) Err() error {
	switch d.Code {
	case CodeNoArguments:
		return ErrNoArguments
	case CodeNotALiteral:
		return ErrNotALiteral
	case CodeFileNotFound:
		return ErrFileNotFound
	}
	return nil
}

// Event is either a record or a diagnostic; exactly one field is set.
type Event struct {
	Record     *CatalogRecord `json:"record,omitempty"`
	Diagnostic *Diagnostic    `json:"diagnostic,omitempty"`
}

// FileResult holds everything extracted from a single file, in emission order.
type FileResult struct {
	File   string  `json:"file"`
	Events []Event `json:"events"`
}

func (r *FileResult) addRecord(rec CatalogRecord) {
	r.Events = append(r.Events, Event{Record: &rec})
}

func (r *FileResult) addDiagnostic(d Diagnostic) {
	r.Events = append(r.Events, Event{Diagnostic: &d})
}

// Records returns the catalog records of the result in order.
func (r *FileResult) Records() []CatalogRecord {
	var out []CatalogRecord
	for _, ev := range r.Events {
		if ev.Record != nil {
			out = append(out, *ev.Record)
		}
	}
	return out
}

// Diagnostics returns the diagnostics of the result in order.
func (r *FileResult) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, ev := range r.Events {
		if ev.Diagnostic != nil {
			out = append(out, *ev.Diagnostic)
		}
	}
	return out
}
