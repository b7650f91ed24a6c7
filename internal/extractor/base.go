package extractor

import sitter "github.com/smacker/go-tree-sitter"

// SiteCollector turns a parsed tree into candidate sites. Each grammar
// the extractor supports provides one.
type SiteCollector interface {
	GetLanguage() *sitter.Language
	CollectSites(root *sitter.Node, sourceCode []byte) []Site
}
