package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang"
	"github.com/msto63/unilang/unilang/command"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		sequence bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "run [instruction...]",
		Short: "Execute instructions",
		Long: `Executes one instruction string. The arguments are joined with
spaces, so quoting the whole instruction is optional.

Without arguments every non-empty line of stdin is executed as its own
instruction string. All lines share one execution context. By default
every line runs; with --sequence execution stops at the first failure.

Examples:
  unilang run .math.add 1 2
  unilang run '.text.repeat "ab " n::3'
  printf '.session.count\n.session.count\n' | unilang run
  unilang run --json .math.avg 1,2,3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			if len(args) > 0 {
				r := p.ProcessCommand(strings.Join(args, " "), command.NewExecutionContext())
				if asJSON {
					if err := writeJSON(out, r); err != nil {
						return err
					}
				} else {
					printResult(out, errOut, r)
				}
				return failure(r)
			}

			inputs, err := readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := command.NewExecutionContext()
			var batch unilang.BatchResult
			if sequence {
				batch = p.ProcessSequence(inputs, ctx)
			} else {
				batch = p.ProcessBatch(inputs, ctx)
			}

			if asJSON {
				if err := writeJSON(out, batch); err != nil {
					return err
				}
			} else {
				for _, r := range batch.Results {
					printResult(out, errOut, r)
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

	// flags end at the first instruction word, so "-1" stays an argument
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVarP(&sequence, "sequence", "s", false, "Stop at the first failing line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func printResult(out, errOut io.Writer, r unilang.Result) {
	if !r.Success {
		if r.Error != nil {
			fmt.Fprintf(errOut, "Error [%s]: %s\n", r.Error.Code, r.Error.Message)
		}
		return
	}
	if text := strings.TrimRight(r.Text(), "\n"); text != "" {
		fmt.Fprintln(out, text)
	}
}

// failure converts a failed result into the error that sets the exit status
func failure(r unilang.Result) error {
	if r.Success {
		return nil
	}
	code := ulerror.CodeInternal
	if r.Error != nil {
		code = r.Error.Code
	}
	return &instructionFailure{code: code}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ulerror.Wrap(err, "failed to read instructions").
			WithCode(ulerror.CodeInvalidInput)
	}
	return lines, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
