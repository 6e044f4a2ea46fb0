package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/msto63/unilang/unilang/loader"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the SQLite command catalog",
		Long: `Manages the SQLite catalog of command definitions. When the
catalog is enabled (catalog.enabled or $UNILANG_CATALOG_PATH) its commands
are registered next to the manifests.

The catalog location is catalog.path (default ./data/unilang.db).`,
	}

	cmd.AddCommand(newCatalogImportCmd(a), newCatalogListCmd(a), newCatalogRemoveCmd(a))
	return cmd
}

func newCatalogImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <manifest>...",
		Short: "Import manifests into the catalog",
		Long: `Imports every command of the given manifests. A command that is
already stored is replaced. Each manifest is imported in one transaction.

Examples:
  unilang catalog import commands.yaml extra.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			for _, path := range args {
				defs, err := loader.LoadFile(path)
				if err != nil {
					return err
				}
				n, err := store.Import(cmd.Context(), defs, filepath.Base(path))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d command(s) from %s\n", n, path)
			}
			return nil
		},
	}
}

func newCatalogListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COMMAND\tVERSION\tSOURCE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Source, e.UpdatedAt.Format("2006-01-02 15:04"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries\n", len(entries))
			return nil
		},
	}
}

func newCatalogRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <command>...",
		Aliases: []string{"rm"},
		Short:   "Remove commands from the catalog",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			for _, name := range args {
				if err := store.Remove(cmd.Context(), name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
			}
			return nil
		},
	}
}
