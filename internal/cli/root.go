package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/spchk/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// app carries the state shared by every command of one invocation
type app struct {
	cfgFile       string
	verbose       bool
	logLevel      string
	missingConfig bool

	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Reports go to stdout,
// diagnostics to stderr
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}

	cmd := &cobra.Command{
		Use:   "spchk",
		Short: "spchk - report misspelled words in text files",
		Long: `spchk checks text files against a word list and prints every word it
cannot match as "<path> (<line>:<column>): <word>".

Matching is case-aware: an all-uppercase word matches any casing of a
dictionary entry, a capitalized word matches its lower-case entry, and
anything else must match exactly. Hyphenated words match when every part
does. The exit status is non-zero when a word was misspelled or a path
could not be read.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Global flags
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.spchk/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug log level)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	_ = a.v.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	// Add subcommands
	cmd.AddCommand(newCheckCommand(a))
	cmd.AddCommand(newLookupCommand(a))
	cmd.AddCommand(newConfigCommand(a))
	cmd.AddCommand(newVersionCommand(a))

	return cmd
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "spchk %s\n", Version)
		},
	}
}

// initConfig reads in config file and ENV variables
func (a *app) initConfig() error {
	setDefaults(a.v, model.DefaultConfig())

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".spchk"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	// Read in environment variables that match SPCHK_*
	a.v.SetEnvPrefix("SPCHK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		// An explicit --config path may not exist yet ("config init")
		if a.cfgFile != "" && errors.Is(err, fs.ErrNotExist) {
			a.missingConfig = true
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// config resolves the effective configuration
func (a *app) config() (*model.Config, error) {
	if a.missingConfig {
		return nil, fmt.Errorf("config file not found: %s", a.cfgFile)
	}
	cfg := model.DefaultConfig()
	if err := a.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if a.verbose && a.logLevel == "" {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("dictionary", cfg.Dictionary)
	v.SetDefault("encoding", cfg.Encoding)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("select.pattern", cfg.Select.Pattern)
	v.SetDefault("select.skip_hidden", cfg.Select.SkipHidden)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("throttle.files_per_second", cfg.Throttle.FilesPerSecond)
	v.SetDefault("throttle.burst", cfg.Throttle.Burst)
	v.SetDefault("throttle.roots", cfg.Throttle.Roots)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	v.SetDefault("output.json", cfg.Output.JSON)
	v.SetDefault("output.color", cfg.Output.Color)
}

// splitArgs separates the word list from the remaining arguments. When no
// dictionary is configured, the first argument names it
func splitArgs(dictionary string, args []string) (string, []string, error) {
	if dictionary != "" {
		if len(args) == 0 {
			return "", nil, errors.New("no paths given")
		}
		return dictionary, args, nil
	}
	if len(args) < 2 {
		return "", nil, errors.New("usage: <dictionary> <path> [...] (or set --dict)")
	}
	return args[0], args[1:], nil
}
