package cli

import (
	"fmt"

	"github.com/ppiankov/spchk/internal/logger"
	"github.com/ppiankov/spchk/internal/match"
	"github.com/ppiankov/spchk/internal/pipeline"
	"github.com/spf13/cobra"
)

func newLookupCommand(a *app) *cobra.Command {
	var dict string

	cmd := &cobra.Command{
		Use:   "lookup [dictionary] <word>...",
		Short: "Check individual words against the dictionary",
		Long: `Look up each word with the same rules used by check and print
"<word>: ok" or "<word>: miss". Exits non-zero when any word misses.

Examples:
  spchk lookup words.txt NASA well-known Teh
  spchk lookup --dict words.txt "(hello),"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if dict == "" {
				dict = cfg.Dictionary
			}

			dictPath, words, err := splitArgs(dict, args)
			if err != nil {
				return err
			}

			log := logger.NewConsoleLogger(a.stderr, cfg.LogLevel, cfg.Output.Color)
			lex, err := loadLexicon(dictPath, cfg.Encoding, log)
			if err != nil {
				return err
			}

			matcher := match.NewMatcher(lex)
			clean := true
			for _, word := range words {
				trimmed := match.Trim(word)
				log.Debugf("%q: trimmed to %q, case class %s", word, trimmed, match.Classify(trimmed))

				verdict := "ok"
				if !matcher.Match(word) {
					verdict = "miss"
					clean = false
				}
				fmt.Fprintf(a.stdout, "%s: %s\n", word, verdict)
			}

			if !clean {
				return pipeline.ErrNotClean
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dict, "dict", "d", "", "dictionary file (one word per line)")
	return cmd
}
