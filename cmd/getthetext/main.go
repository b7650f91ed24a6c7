package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"getthetext/internal/catalog"
	"getthetext/internal/config"
	"getthetext/internal/crawler"
	"getthetext/internal/extractor"
	"getthetext/internal/git"
	"getthetext/internal/pipeline"
	"getthetext/internal/storage"
)

type options struct {
	configPath   string
	methods      string
	attributes   string
	jobs         int
	cachePath    string
	changedSince string
	recursive    bool
	noColor      bool
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "getthetext [flags] <path>...",
		Short: "Extract translatable strings from C# sources into a gettext catalog",
		Long: `Scans C# files for calls to translation marker methods (_, _n, _p, _pn,
gettext, Tr) and for marker attributes ([Description("...")]), and prints a
gettext catalog entry for every string literal found. Malformed marker sites
are reported on stderr.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.changedSince == "" {
				return errors.New("requires at least one input path (or --changed-since)")
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	f.StringVarP(&opts.methods, "methods", "m", "", "Comma or colon separated marker method names (replaces the defaults)")
	f.StringVarP(&opts.attributes, "attributes", "a", "", "Comma or colon separated marker attribute names (replaces the defaults)")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "Number of files extracted in parallel (default: number of CPUs)")
	f.StringVar(&opts.cachePath, "cache", "", "Path to an SQLite extraction cache (disabled when empty)")
	f.StringVar(&opts.changedSince, "changed-since", "", "Only scan C# files changed since this git ref")
	f.BoolVarP(&opts.recursive, "recursive", "r", false, "Expand directory arguments into their .cs files")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable highlighting of diagnostics")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	return cmd
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func runExtract(cmd *cobra.Command, opts *options, args []string) error {
	setupLogging(opts.verbose)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(opts.configPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, opts, cfg)

	markers := cfg.MarkerSet()
	log.Debug().
		Strs("methods", markers.Methods()).
		Strs("attributes", markers.Attributes()).
		Msg("Marker configuration")

	ext, err := extractor.NewExtractor(cfg.Scan.Language, markers)
	if err != nil {
		return err
	}

	paths := args
	if opts.changedSince != "" {
		paths, err = changedPaths(ctx, opts.changedSince, args)
		if err != nil {
			return err
		}
		log.Info().Int("count", len(paths)).Str("ref", opts.changedSince).Msg("Changed source files")
	}

	var cache storage.ResultCache
	if cfg.Cache.Path != "" {
		store, err := storage.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("failed to open cache %s: %w", cfg.Cache.Path, err)
		}
		defer store.Close()
		cache = store
	}

	w := catalog.NewWriter(cmd.OutOrStdout(), cmd.ErrOrStderr(), useColor(opts, cfg))
	runner := pipeline.NewRunner(ext, crawler.NewCrawler(cfg.Scan.Recursive, cfg.Scan.Ignore), w, cache, cfg.Scan.Jobs)

	_, err = runner.Run(ctx, paths)
	return err
}

// applyFlags lets explicitly given flags win over config file and environment.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("methods") {
		cfg.Markers.Methods = config.ParseNameList(opts.methods)
	}
	if f.Changed("attributes") {
		cfg.Markers.Attributes = config.ParseNameList(opts.attributes)
	}
	if f.Changed("jobs") && opts.jobs > 0 {
		cfg.Scan.Jobs = opts.jobs
	}
	if f.Changed("cache") {
		cfg.Cache.Path = opts.cachePath
	}
	if f.Changed("recursive") {
		cfg.Scan.Recursive = opts.recursive
	}
}

func useColor(opts *options, cfg *config.Config) bool {
	if opts.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if cfg.Output.Color != nil {
		return *cfg.Output.Color
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// changedPaths lists C# files changed since ref. When roots are given,
// only files inside one of them are kept.
func changedPaths(ctx context.Context, ref string, roots []string) ([]string, error) {
	changed, err := git.ChangedSources(ctx, ref, ".cs")
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return changed, nil
	}

	var paths []string
	for _, p := range changed {
		if underAny(p, roots) {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func underAny(path string, roots []string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}
