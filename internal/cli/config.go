package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/spchk/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHierarchy = `Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (SPCHK_*, e.g. SPCHK_CONCURRENCY_WORKERS)
  3. Config file (~/.spchk/config.yaml)
  4. Defaults
`

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage spchk configuration",
		Long:  "Manage spchk configuration files and settings.\n\n" + configHierarchy,
	}
	cmd.AddCommand(newConfigShowCommand(a))
	cmd.AddCommand(newConfigInitCommand(a))
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Display the configuration after merging defaults, config file, env vars and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(a.stderr, "Configuration file: %s\n\n", used)
			} else {
				fmt.Fprintf(a.stderr, "No configuration file found (using defaults)\n\n")
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
}

func newConfigInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Create ~/.spchk/config.yaml (or the --config path) holding every option at its default.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			configPath := a.cfgFile
			if configPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("find home directory: %w", err)
				}
				configPath = filepath.Join(home, ".spchk", "config.yaml")
			}

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}

			if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			data, err := yaml.Marshal(model.DefaultConfig())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			f, err := os.Create(configPath)
			if err != nil {
				return fmt.Errorf("create config file: %w", err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("close config file: %w", closeErr)
				}
			}()

			if _, err := fmt.Fprintf(f, "# spchk configuration\n#\n# %s\n", commentLines(configHierarchy)); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if _, err := f.Write(data); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			fmt.Fprintf(a.stdout, "Created default configuration: %s\n", configPath)
			return nil
		},
	}
}

// commentLines prefixes every line after the first with "# "
func commentLines(s string) string {
	out := make([]byte, 0, len(s)+32)
	for i := 0; i < len(s); i++ {
		out = append(out, s[i])
		if s[i] == '\n' && i+1 < len(s) {
			out = append(out, '#', ' ')
		}
	}
	return string(out)
}
