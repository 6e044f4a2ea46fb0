package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	ulconfig "github.com/msto63/unilang/core/config"
	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/internal/builtin"
	"github.com/msto63/unilang/internal/catalog"
	"github.com/msto63/unilang/unilang"
	"github.com/msto63/unilang/unilang/registry"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	cfgFile  string
	logLevel string

	settings *ulconfig.Settings
	logger   *ullog.Logger
}

// NewRootCmd builds the unilang command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "unilang",
		Short: "Command language front end",
		Long: `unilang parses, validates and executes instructions of the form

  .namespace.command positional name::value ;; .next.command

against a registry of command definitions. Commands come from the
compiled-in static table, from YAML/TOML/JSON manifests and from the
optional SQLite catalog.

Examples:
  unilang run .math.add 1 2
  unilang run "sum a::40 b::2 ;; .echo done"
  unilang help .text.repeat
  unilang repl --watch`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: ./unilang.toml, $UNILANG_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return ulerror.Wrap(err, "invalid flag").WithCode(ulerror.CodeValidationFailed)
	})

	root.AddCommand(
		newRunCmd(a),
		newReplCmd(a),
		newListCmd(a),
		newValidateCmd(a),
		newGenerateCmd(a),
		newCatalogCmd(a),
		newVersionCmd(),
	)
	root.SetHelpCommand(newHelpCmd(a))
	return root
}

// Execute runs the CLI and returns the process exit status
func Execute() int {
	return execute(NewRootCmd(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(root *cobra.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var failed *instructionFailure
	if !errors.As(err, &failed) {
		printError(stderr, err)
	}
	return exitCode(err)
}

// setup loads settings and configures the default logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgFile != "" {
		a.settings, err = ulconfig.Load(a.cfgFile)
	} else {
		a.settings, err = ulconfig.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		a.settings.Log.Level = a.logLevel
	}

	level, err := ullog.ParseLevel(a.settings.Log.Level)
	if err != nil {
		return ulerror.Wrap(err, "invalid log level").
			WithCode(ulerror.CodeInvalidConfig).
			WithDetail("level", a.settings.Log.Level)
	}
	format, err := ullog.ParseFormat(a.settings.Log.Format)
	if err != nil {
		return ulerror.Wrap(err, "invalid log format").
			WithCode(ulerror.CodeInvalidConfig).
			WithDetail("format", a.settings.Log.Format)
	}
	a.logger = ullog.NewWithConfig(ullog.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		Name:   "unilang",
	})
	ullog.SetDefault(a.logger)
	return nil
}

// registry assembles the command registry, including catalog entries when
// the catalog is enabled
func (a *app) registry(ctx context.Context) (*registry.Hybrid, error) {
	opts := builtin.Options{Settings: a.settings, Logger: a.logger}
	if a.settings.Catalog.Enabled {
		store, err := a.openCatalog()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		defs, err := store.Definitions(ctx)
		if err != nil {
			return nil, err
		}
		opts.Definitions = defs
	}
	return builtin.NewRegistry(opts)
}

func (a *app) pipeline(ctx context.Context) (*unilang.Pipeline, error) {
	reg, err := a.registry(ctx)
	if err != nil {
		return nil, err
	}
	return unilang.NewPipeline(reg, unilang.OptionsFromSettings(a.settings, a.logger))
}

func (a *app) openCatalog() (*catalog.Store, error) {
	return catalog.Open(catalog.Config{Path: a.settings.Catalog.Path, Logger: a.logger})
}

// instructionFailure reports failed instructions whose errors were already
// printed
type instructionFailure struct {
	code ulerror.Code
}

func (e *instructionFailure) Error() string {
	return fmt.Sprintf("instruction failed: %s", e.code)
}

// exitCode maps err to a process exit status. Codes outside the known
// categories come from routines and count as execution failures.
func exitCode(err error) int {
	var failed *instructionFailure
	code := ulerror.GetCode(err)
	if errors.As(err, &failed) {
		code = failed.code
	}
	if code.Category() == "" {
		return ulerror.CodeExecution.ExitCode()
	}
	return code.ExitCode()
}

func printError(w io.Writer, err error) {
	if code := ulerror.GetCode(err); code != ulerror.CodeUnknown && code != "" {
		fmt.Fprintf(w, "Error [%s]: %v\n", code, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
