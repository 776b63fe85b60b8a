package cli

import (
	"fmt"

	"github.com/ppiankov/spchk/internal/cache"
	"github.com/ppiankov/spchk/internal/discover"
	"github.com/ppiankov/spchk/internal/lexicon"
	"github.com/ppiankov/spchk/internal/logger"
	"github.com/ppiankov/spchk/internal/match"
	"github.com/ppiankov/spchk/internal/pipeline"
	"github.com/ppiankov/spchk/internal/worker"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "check [dictionary] <path>...",
		Short: "Check files and directories for misspelled words",
		Long: `Check every file named on the command line, and every selected file under
each named directory, against the dictionary.

When --dict (or the dictionary config key) is set, every argument is a path.
Otherwise the first argument names the word list.

Each misspelled word is printed as:
  <path> (<line>:<column>): <word>

Examples:
  spchk check words.txt notes.txt docs/
  spchk check --dict words.txt -j 4 --json report.json docs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("no-cache") {
				cfg.Cache.Enabled = !noCache
			}

			dict, paths, err := splitArgs(cfg.Dictionary, args)
			if err != nil {
				return err
			}

			log := logger.NewConsoleLogger(a.stderr, cfg.LogLevel, cfg.Output.Color)

			lex, err := loadLexicon(dict, cfg.Encoding, log)
			if err != nil {
				return err
			}

			source, err := pipeline.NewSource(cfg.Encoding)
			if err != nil {
				return err
			}

			var opts []match.Option
			var verdicts *cache.MemoryCache
			if cfg.Cache.Enabled {
				verdicts = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
				opts = append(opts, match.WithCache(verdicts))
			}
			checker := pipeline.NewChecker(match.NewMatcher(lex, opts...), source)

			var sink pipeline.Sink = pipeline.NewTextSink(a.stdout, log, logger.ColorEnabled(a.stdout, cfg.Output.Color))
			var recorded *pipeline.Recorder
			if cfg.Output.JSON != "" {
				recorded = &pipeline.Recorder{}
				sink = pipeline.Tee{sink, recorded}
			}

			var tally pipeline.Tally
			found := discover.Expand(paths, discover.Options{
				Pattern:    cfg.Select.Pattern,
				SkipHidden: cfg.Select.SkipHidden,
			})
			log.Debugf("Selected %d files from %d paths", len(found.Targets), len(paths))

			// Discovery failures are reported just ahead of the target that
			// followed them, keeping command-line order
			failures := found.Failures
			reportFailures := func(upTo int) {
				for len(failures) > 0 && failures[0].Index <= upTo {
					sink.Failure(failures[0].PathFailure)
					tally.AddFailure()
					failures = failures[1:]
				}
			}

			limiter := worker.NewLimiter(cfg.Throttle.FilesPerSecond, cfg.Throttle.Burst)
			for _, root := range cfg.Throttle.Roots {
				limiter.SetRootRate(root.Path, root.FilesPerSecond, root.Burst)
				log.Debugf("Throttling %s to %g files/s", root.Path, root.FilesPerSecond)
			}

			processor := worker.NewBatchProcessor(checker, cfg.Concurrency.Workers, limiter)
			processor.ProcessFiles(cmd.Context(), found.Targets, func(result *pipeline.FileResult) {
				reportFailures(result.Index)
				result.Replay(sink)
				tally.AddFile(result)
			})
			reportFailures(len(found.Targets))

			if verdicts != nil {
				stats := verdicts.Stats()
				log.Debugf("Verdict cache: %d hits, %d misses, %d entries", stats.Hits, stats.Misses, stats.Items)
			}
			log.Infof("Checked %d files: %d misspelled words, %d inaccessible paths",
				tally.Files, tally.Misses, tally.Failures)

			if cfg.Output.JSON != "" {
				report := pipeline.NewReport(pipeline.ReportInput{
					Dictionary: dict,
					Lexicon:    lex.Stats(),
					Paths:      paths,
					Tally:      &tally,
					Recorded:   recorded,
				})
				if err := pipeline.RenderJSON(report, cfg.Output.JSON); err != nil {
					return fmt.Errorf("render report: %w", err)
				}
				log.Infof("Wrote JSON report: %s", cfg.Output.JSON)
			}

			return tally.Err()
		},
	}

	flags := cmd.Flags()
	flags.StringP("dict", "d", "", "dictionary file (one word per line)")
	flags.IntP("workers", "j", 1, "number of files checked in parallel")
	flags.String("encoding", "utf-8", "charset of the dictionary and input files")
	flags.String("pattern", ".txt", "substring a file path under a directory must contain (empty selects all)")
	flags.Bool("skip-hidden", true, "skip hidden entries while walking directories")
	flags.String("json", "", "also write a JSON report to this path")
	flags.String("color", "auto", "highlight misspelled words: auto, always, never")
	flags.Float64("files-per-second", 0, "open at most this many files per second under each path (0 = unlimited)")
	flags.Int("burst", 5, "files that may be opened at once before throttling applies")
	flags.BoolVar(&noCache, "no-cache", false, "disable the verdict cache")

	_ = a.v.BindPFlag("dictionary", flags.Lookup("dict"))
	_ = a.v.BindPFlag("concurrency.workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("encoding", flags.Lookup("encoding"))
	_ = a.v.BindPFlag("select.pattern", flags.Lookup("pattern"))
	_ = a.v.BindPFlag("select.skip_hidden", flags.Lookup("skip-hidden"))
	_ = a.v.BindPFlag("output.json", flags.Lookup("json"))
	_ = a.v.BindPFlag("output.color", flags.Lookup("color"))
	_ = a.v.BindPFlag("throttle.files_per_second", flags.Lookup("files-per-second"))
	_ = a.v.BindPFlag("throttle.burst", flags.Lookup("burst"))

	return cmd
}

// loadLexicon reads the word list, tracing every rejected record
func loadLexicon(path, encoding string, log *logger.ConsoleLogger) (*lexicon.Lexicon, error) {
	lex, err := lexicon.LoadFile(path, lexicon.LoadOptions{
		Encoding: encoding,
		OnReject: func(line int, word string, err error) {
			log.Tracef("%s:%d: skipped %q: %v", path, line, word, err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	stats := lex.Stats()
	if stats.Rejected > 0 {
		log.Warnf("Skipped %d dictionary entries outside the supported alphabet", stats.Rejected)
	}
	log.Debugf("Loaded %d dictionary entries (%d exact words, %d folded words, %d nodes)",
		stats.Entries, stats.Exact, stats.Folded, stats.Nodes)
	return lex, nil
}
