package cmd

import (
	"github.com/msto63/unilang/internal/repl"
	"github.com/msto63/unilang/unilang"
	"github.com/spf13/cobra"
)

func newReplCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Long: `Starts the interactive unilang shell.

All lines of a session share one execution context. With --watch the
registry is rebuilt whenever the commands manifest or an extra manifest
is written.

Navigation:
  Enter     - Execute the line
  Tab       - Complete the command name
  Up/Down   - Walk the input history
  PgUp/PgDn - Scroll the output
  Esc       - Quit (also: exit, quit, Ctrl+C)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			cfg := repl.Config{
				Prompt:         a.settings.REPL.Prompt,
				MaxSuggestions: a.settings.REPL.MaxSuggestions,
				Pipeline:       p,
				Logger:         a.logger,
			}

			var wc *repl.WatchConfig
			if watch {
				wc = &repl.WatchConfig{
					Files:    a.manifests(),
					Debounce: a.settings.Commands.WatchDebounce.Duration,
					Rebuild: func() (*unilang.Pipeline, error) {
						return a.pipeline(cmd.Context())
					},
				}
			}
			return repl.Run(cmd.Context(), cfg, wc)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the registry when manifests change")
	return cmd
}

// manifests lists the manifest files the registry is loaded from
func (a *app) manifests() []string {
	var files []string
	if a.settings.Commands.Path != "" {
		files = append(files, a.settings.Commands.Path)
	}
	files = append(files, a.settings.Commands.Extra...)
	for _, m := range a.settings.Commands.EnabledModules() {
		files = append(files, m.Path)
	}
	return files
}
