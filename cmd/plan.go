package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/plan"
	"github.com/orest-d/liquer-go/planner"
)

func init() {
	planCommand := &cobra.Command{
		Use:   "plan <query>",
		Short: "Compile a query and print its plan without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.OutOrStdout(), args[0])
		},
	}
	RootCommand.AddCommand(planCommand)
}

func runPlan(w io.Writer, queryText string) error {
	q, err := ast.Parse(queryText)
	if err != nil {
		return err
	}

	p, err := planner.Plan(q, command.NewRegistry())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Kind", "Detail"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	printPlanRows(table, p, "")
	table.Render()
	return nil
}

func printPlanRows(table *tablewriter.Table, p *plan.Plan, indent string) {
	for i, step := range p.Steps {
		kind, detail := describeStep(step)
		table.Append([]string{strconv.Itoa(i), kind, indent + detail})
		if sub, ok := step.(*plan.PlanStep); ok {
			printPlanRows(table, sub.SubPlan, indent+"  ")
		}
	}
}

func describeStep(step plan.Step) (kind, detail string) {
	switch s := step.(type) {
	case *plan.GetResourceStep:
		return "get_resource", s.Key.Encode()
	case *plan.GetResourceMetadataStep:
		return "get_resource_metadata", s.Key.Encode()
	case *plan.EvaluateStep:
		return "evaluate", s.SubQuery.Encode()
	case *plan.ActionStep:
		return "action", describeAction(s)
	case *plan.FilenameStep:
		return "filename", s.Name
	case *plan.InfoStep:
		return "info", s.Message
	case *plan.WarningStep:
		return "warning", s.Message
	case *plan.ErrorStep:
		return "error", s.Message
	case *plan.PlanStep:
		return "plan", fmt.Sprintf("%d step(s)", len(s.SubPlan.Steps))
	default:
		return "unknown", ""
	}
}

func describeAction(s *plan.ActionStep) string {
	name := s.Name
	if s.Namespace != "" {
		name = s.Namespace + "." + name
	}
	if s.Realm != "" {
		name = s.Realm + ":" + name
	}
	if len(s.Parameters.Values) == 0 {
		return name
	}
	detail := name
	for _, p := range s.Parameters.Values {
		detail += " " + p.Value.String()
	}
	return detail
}
