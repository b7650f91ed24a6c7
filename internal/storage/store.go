package storage

import (
	"context"

	"getthetext/internal/extractor"
)

// ResultCache stores per-file extraction results keyed by content and
// marker configuration, so unchanged files skip parsing on later runs.
type ResultCache interface {
	// Get returns the cached result for key, if any.
	Get(ctx context.Context, key string) (*extractor.FileResult, bool, error)

	// Put stores res under key, replacing any previous entry.
	Put(ctx context.Context, key string, res *extractor.FileResult) error

	// PruneFile drops every entry stored for path except keep.
	PruneFile(ctx context.Context, path, keep string) error

	Close() error
}
