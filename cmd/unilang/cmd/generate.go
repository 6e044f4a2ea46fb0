package cmd

import (
	"fmt"

	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/staticgen"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		manifest string
		output   string
		opts     staticgen.Options
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a static command table from a manifest",
		Long: `Compiles a command manifest into Go source declaring a
registry.Table, so the commands are available without loading files at
runtime. Routines are bound by their routine links when the table is
handed to the registry builder.

The manifest defaults to $UNILANG_STATIC_COMMANDS_PATH, else
unilang.commands.yaml.

Examples:
  unilang generate -m commands.yaml -o static_commands.go -p builtin
  //go:generate go run github.com/msto63/unilang/cmd/unilang generate -m commands.yaml -o static_commands.go`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifest == "" {
				manifest = staticgen.ManifestPath()
			}
			if err := staticgen.GenerateFile(manifest, output, opts); err != nil {
				return err
			}
			a.logger.Info("Static command table generated", ullog.Fields{
				"manifest": manifest,
				"output":   output,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s from %s\n", output, manifest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "Manifest file (YAML, TOML or JSON)")
	cmd.Flags().StringVarP(&output, "output", "o", "static_commands.go", "Output Go file")
	cmd.Flags().StringVarP(&opts.Package, "package", "p", "commands", "Package name of the generated file")
	cmd.Flags().StringVar(&opts.VarName, "var", "StaticCommands", "Name of the generated table variable")
	return cmd
}
