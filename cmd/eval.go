package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/command/executor"
	"github.com/orest-d/liquer-go/util"
	"github.com/orest-d/liquer-go/value"
)

const (
	evalTextOutput = "text"
	evalJSONOutput = "json"
)

type evalCommandParams struct {
	stdin        bool
	outputFormat *util.EnumFlag
}

func init() {
	var params evalCommandParams
	params.outputFormat = util.NewEnumFlag(evalTextOutput, []string{evalTextOutput, evalJSONOutput})

	evalCommand := &cobra.Command{
		Use:   "eval <query>",
		Short: "Evaluate a query and print the result",
		Long: `Evaluate a query and print the result.

Example:

	$ liquer eval 'dataset.csv/-/lower/plot.html'

Output Formats
--------------

	--format=text : print the result's string representation
	--format=json : print {"data": ..., "metadata": ...} as JSON
`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && params.stdin {
				return fmt.Errorf("specify a query argument or --stdin but not both")
			}
			if len(args) == 0 && !params.stdin {
				return fmt.Errorf("specify a query argument or --stdin")
			}
			if len(args) > 1 {
				return fmt.Errorf("specify at most one query argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			isError, err := runEval(args, params, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if isError {
				os.Exit(1)
			}
			return nil
		},
	}

	addQueryStdinFlag(evalCommand.Flags(), &params.stdin)
	addOutputFormat(evalCommand.Flags(), params.outputFormat)

	RootCommand.AddCommand(evalCommand)
}

// runEval evaluates the query named by args (or read from stdin) and
// writes its result to w. The returned bool reports whether the
// resulting state is in metadata.StatusError, letting the caller decide
// how to turn that into a process exit code without runEval itself
// calling os.Exit, so it stays testable.
func runEval(args []string, params evalCommandParams, w io.Writer) (bool, error) {
	var query string
	if params.stdin {
		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			return false, err
		}
		query = string(bs)
	} else {
		query = args[0]
	}

	env, err := newEnvironment(command.NewRegistry(), executor.NewExecutor())
	if err != nil {
		return false, err
	}

	st, err := env.Evaluate(context.Background(), query)
	if err != nil {
		return false, err
	}

	switch params.outputFormat.String() {
	case evalJSONOutput:
		data, err := value.AsBytes(st.Data, value.FormatJSON)
		if err != nil {
			return false, err
		}
		var rawData json.RawMessage = data
		bs, err := json.MarshalIndent(struct {
			Data     json.RawMessage `json:"data"`
			Metadata interface{}     `json:"metadata"`
		}{Data: rawData, Metadata: st.Metadata}, "", "  ")
		if err != nil {
			return false, err
		}
		fmt.Fprintln(w, string(bs))
	default:
		fmt.Fprintln(w, st.Data)
	}

	return st.IsError(), nil
}
