package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/msto63/unilang/unilang/registry"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		namespace string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered commands",
		Long: `Lists every registered command with its status, version and hint.

Examples:
  unilang list
  unilang list --namespace .math
  unilang list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}
			return listCommands(cmd.OutOrStdout(), reg, namespace, asJSON)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Only commands in this namespace")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print definitions as JSON")
	return cmd
}

func listCommands(w io.Writer, reg registry.Registry, namespace string, asJSON bool) error {
	defs := reg.Commands()
	if namespace != "" {
		ns := "." + strings.TrimPrefix(namespace, ".")
		filtered := defs[:0:0]
		for _, def := range defs {
			if def.Namespace == ns || strings.HasPrefix(def.Namespace, ns+".") {
				filtered = append(filtered, def)
			}
		}
		defs = filtered
	}

	if asJSON {
		return writeJSON(w, defs)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tSTATUS\tVERSION\tHINT")
	for _, def := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.FullName(), def.Status, def.Version, def.Hint)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d command(s)\n", len(defs))
	return nil
}
