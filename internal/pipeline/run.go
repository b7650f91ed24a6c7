package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"getthetext/internal/catalog"
	"getthetext/internal/crawler"
	"getthetext/internal/extractor"
	"getthetext/internal/storage"
	"getthetext/internal/worker"
)

// Summary counts what one run produced.
type Summary struct {
	Files       int
	Missing     int
	Failed      int
	CacheHits   int
	Records     int
	Diagnostics int
}

// Runner extracts a list of inputs and writes the catalog in input order.
type Runner struct {
	ext     *extractor.Extractor
	crawler *crawler.Crawler
	writer  *catalog.Writer
	cache   storage.ResultCache
	jobs    int
}

// NewRunner wires a run. cache may be nil to disable caching.
func NewRunner(ext *extractor.Extractor, cr *crawler.Crawler, w *catalog.Writer, cache storage.ResultCache, jobs int) *Runner {
	return &Runner{
		ext:     ext,
		crawler: cr,
		writer:  w,
		cache:   cache,
		jobs:    jobs,
	}
}

type fileOutcome struct {
	result *extractor.FileResult
	cached bool
}

// Run extracts every path and streams the results to the writer.
// Per-file problems are written as diagnostics and never abort the run;
// only output failures and cancellation are returned as errors.
func (r *Runner) Run(ctx context.Context, paths []string) (Summary, error) {
	var sum Summary
	start := time.Now()

	inputs, err := r.crawler.Expand(paths)
	if err != nil {
		return sum, err
	}

	var present []string
	for _, in := range inputs {
		if !in.Missing {
			present = append(present, in.Path)
		}
	}

	pool := worker.NewPool(r.jobs, r.processFile)
	tasks, err := pool.Execute(ctx, present)
	if err != nil {
		return sum, fmt.Errorf("extraction interrupted: %w", err)
	}

	next := 0
	for _, in := range inputs {
		if in.Missing {
			sum.Missing++
			if err := r.writer.FileNotFound(in.Path); err != nil {
				return sum, err
			}
			continue
		}

		task := tasks[next]
		next++
		sum.Files++

		switch {
		case errors.Is(task.Err, extractor.ErrFileNotFound):
			// removed between discovery and reading
			sum.Missing++
			err = r.writer.FileNotFound(in.Path)
		case task.Err != nil:
			sum.Failed++
			log.Warn().Err(task.Err).Str("path", in.Path).Msg("Failed to process file")
			err = r.writer.FileFailed(in.Path, task.Err)
		default:
			if task.Result.cached {
				sum.CacheHits++
			}
			err = r.writer.WriteResult(task.Result.result)
		}
		if err != nil {
			return sum, err
		}
		if err := r.writer.Flush(); err != nil {
			return sum, fmt.Errorf("flush catalog: %w", err)
		}
	}

	sum.Records, sum.Diagnostics = r.writer.Counts()
	log.Info().
		Int("files", sum.Files).
		Int("missing", sum.Missing).
		Int("failed", sum.Failed).
		Int("cache_hits", sum.CacheHits).
		Int("records", sum.Records).
		Int("diagnostics", sum.Diagnostics).
		Dur("elapsed", time.Since(start)).
		Msg("Extraction complete")
	return sum, nil
}

func (r *Runner) processFile(ctx context.Context, path string) (fileOutcome, error) {
	sourceCode, err := extractor.ReadSource(path)
	if err != nil {
		return fileOutcome{}, err
	}

	var key string
	if r.cache != nil {
		key = storage.CacheKey(path, sourceCode, r.ext.Markers())
		res, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cache lookup failed")
		} else if ok {
			log.Debug().Str("path", path).Msg("Cache hit")
			return fileOutcome{result: res, cached: true}, nil
		}
	}

	res, err := r.ext.ExtractSource(ctx, path, sourceCode)
	if err != nil {
		return fileOutcome{}, err
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, key, res); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cache store failed")
		} else if err := r.cache.PruneFile(ctx, path, key); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cache prune failed")
		}
	}
	return fileOutcome{result: res}, nil
}
