package cmd

import (
	"strings"

	"github.com/msto63/unilang/unilang/command"
	"github.com/spf13/cobra"
)

func newHelpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "help [subcommand | command]",
		Short: "Help for a subcommand or a registered command",
		Long: `Shows the help of a CLI subcommand, or the help text of a
registered command. Without arguments the registered commands are listed.

Examples:
  unilang help run
  unilang help .math.add
  unilang help sum`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				if err := root.Help(); err != nil {
					return err
				}
				cmd.Println()
				return a.showHelp(cmd, ".")
			}
			if sub, _, err := root.Find(args); err == nil && sub != root {
				return sub.Help()
			}
			return a.showHelp(cmd, strings.Join(args, " ")+" ?")
		},
	}
}

// showHelp runs a help request through the pipeline and prints its text
func (a *app) showHelp(cmd *cobra.Command, input string) error {
	if a.settings == nil {
		if err := a.setup(cmd, nil); err != nil {
			return err
		}
	}
	p, err := a.pipeline(cmd.Context())
	if err != nil {
		return err
	}
	r := p.ProcessCommand(input, command.NewExecutionContext())
	printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), r)
	return failure(r)
}
