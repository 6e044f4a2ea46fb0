package cmd

import (
	"fmt"
	"strings"

	"github.com/msto63/unilang/internal/builtin"
	"github.com/msto63/unilang/unilang/loader"
	"github.com/msto63/unilang/unilang/registry"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var manifests []string

	cmd := &cobra.Command{
		Use:   "validate [instruction...]",
		Short: "Check instructions or manifests without executing",
		Long: `Parses and analyzes an instruction string without executing it.
Without arguments every non-empty line of stdin is checked.

With --manifest the given manifest files are loaded, validated and bound
to the built-in routines instead.

Examples:
  unilang validate .math.add 1 x
  unilang validate --manifest commands.yaml --manifest extra.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(manifests) > 0 {
				return a.validateManifests(cmd, manifests)
			}

			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			inputs := []string{strings.Join(args, " ")}
			if len(args) == 0 {
				if inputs, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			batch := p.ValidateBatch(inputs)
			for _, r := range batch.Results {
				if r.Success {
					fmt.Fprintf(cmd.OutOrStdout(), "ok      %s\n", r.Command)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "invalid %s\n", r.Command)
					printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), r)
				}
			}
			for _, r := range batch.Results {
				if err := failure(r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringArrayVarP(&manifests, "manifest", "m", nil, "Manifest file to validate (repeatable)")
	return cmd
}

func (a *app) validateManifests(cmd *cobra.Command, paths []string) error {
	b := registry.NewBuilder().WithRoutineLinks(builtin.Routines()).WithMode(registry.ModeDynamicOnly)
	total := 0
	for _, path := range paths {
		defs, err := loader.LoadFile(path)
		if err != nil {
			return err
		}
		total += len(defs)
		for _, def := range defs {
			b.Command(def, nil)
		}
	}
	if _, err := b.Build(registry.Options{Logger: a.logger}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d manifest(s), %d command(s) valid\n", len(paths), total)
	return nil
}
