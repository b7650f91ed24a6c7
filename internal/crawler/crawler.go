package crawler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Input is one file to extract, in the order it will be reported.
type Input struct {
	Path    string
	Missing bool
}

// Crawler turns command-line paths into the ordered list of files to scan.
type Crawler struct {
	recursive  bool
	ignored    []string
	extensions []string
}

// NewCrawler creates a new crawler instance. Directories are only expanded
// when recursive is set; otherwise they are reported as missing files.
func NewCrawler(recursive bool, ignored []string) *Crawler {
	return &Crawler{
		recursive:  recursive,
		ignored:    ignored,
		extensions: []string{".cs"},
	}
}

// Expand resolves paths in the order given. Files are kept as written,
// directories expand to their source files in lexical order. Paths that
// cannot be stat'ed are reported as missing rather than failing the run.
func (c *Crawler) Expand(paths []string) ([]Input, error) {
	var inputs []Input
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// Anything that cannot be stat'ed (missing, a file used as a
			// directory, no permission) counts as not found.
			if !errors.Is(err, fs.ErrNotExist) {
				log.Debug().Err(err).Str("path", p).Msg("Cannot stat input")
			}
			inputs = append(inputs, Input{Path: p, Missing: true})
			continue
		}

		if !info.IsDir() {
			inputs = append(inputs, Input{Path: p})
			continue
		}

		if !c.recursive {
			log.Debug().Str("path", p).Msg("Directory given without --recursive")
			inputs = append(inputs, Input{Path: p, Missing: true})
			continue
		}

		err = c.ScanProject(p, func(path string) {
			inputs = append(inputs, Input{Path: path})
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
	}

	log.Debug().Int("count", len(inputs)).Msg("Discovered files")
	return inputs, nil
}

// ScanProject walks root and streams every source file it finds.
func (c *Crawler) ScanProject(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && c.isIgnored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if c.isSource(d.Name()) {
			onFile(path)
		}
		return nil
	})
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return false
}

func (c *Crawler) isSource(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
