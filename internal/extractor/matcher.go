package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

var (
	DefaultMethods    = []string{"_", "_n", "_p", "_pn", "gettext", "Tr"}
	DefaultAttributes = []string{"Description"}
)

// Markers is the set of names that identify translation sites.
// It is built once and only read afterwards; share it freely between goroutines.
type Markers struct {
	methods    map[string]struct{}
	attributes map[string]struct{}
}

// NewMarkers builds a Markers value. A nil slice selects the default names;
// an empty non-nil slice disables that category.
func NewMarkers(methods, attributes []string) Markers {
	if methods == nil {
		methods = DefaultMethods
	}
	if attributes == nil {
		attributes = DefaultAttributes
	}
	return Markers{
		methods:    toSet(methods),
		attributes: toSet(attributes),
	}
}

// DefaultMarkers returns the stock gettext/Godot marker names.
func DefaultMarkers() Markers {
	return NewMarkers(nil, nil)
}

// MatchesMethod reports whether a call site invokes a marker method.
// Only the simple name counts: obj.gettext(...) and a.b.gettext(...) match
// just like gettext(...). No type information is consulted.
func (m Markers) MatchesMethod(s Site) bool {
	if s.Kind != SiteCall {
		return false
	}
	switch s.Callee {
	case CalleeIdentifier, CalleeMemberAccess:
		_, ok := m.methods[s.Name]
		return ok
	default:
		return false
	}
}

// MatchesAttribute reports whether an attribute site applies a marker attribute.
func (m Markers) MatchesAttribute(s Site) bool {
	if s.Kind != SiteAttribute || s.Name == "" {
		return false
	}
	_, ok := m.attributes[s.Name]
	return ok
}

// Methods returns the configured method names, sorted.
func (m Markers) Methods() []string { return sortedKeys(m.methods) }

// Attributes returns the configured attribute names, sorted.
func (m Markers) Attributes() []string { return sortedKeys(m.attributes) }

// Fingerprint identifies the marker configuration. Cached extraction
// results are only valid for the fingerprint they were produced with.
func (m Markers) Fingerprint() string {
	canonical := strings.Join(m.Methods(), ",") + "|" + strings.Join(m.Attributes(), ",")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:8])
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
