package cmd

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/orest-d/liquer-go/command"
)

func init() {
	registryCommand := &cobra.Command{
		Use:   "registry",
		Short: "Inspect registered command metadata",
	}

	var long bool
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List registered commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryList(cmd.OutOrStdout(), long)
		},
	}
	addLongDocFlag(listCommand.Flags(), &long)

	registryCommand.AddCommand(listCommand)
	RootCommand.AddCommand(registryCommand)
}

// runRegistryList prints the commands known to a freshly built Registry.
// Nothing registers itself with the registry a new process starts with, so
// this is mainly useful once a caller embeds the engine and registers its
// own commands against the same Registry type this command reports on. When
// long is set, the Doc column shows each command's full description
// instead of its one-line summary.
func runRegistryList(w io.Writer, long bool) error {
	reg := command.NewRegistry()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Realm", "Namespace", "Name", "Arguments", "Doc"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	for _, cm := range reg.All() {
		doc := cm.ShortDoc
		if long {
			doc = cm.Doc()
		}
		table.Append([]string{cm.Realm, cm.Namespace, cm.Name, describeArguments(cm), doc})
	}
	table.Render()
	return nil
}

func describeArguments(cm *command.CommandMetadata) string {
	if len(cm.Arguments) == 0 {
		return ""
	}
	parts := make([]string, len(cm.Arguments))
	for i, a := range cm.Arguments {
		part := a.Name + ":" + a.Type.String()
		if a.Multiple {
			part += "*"
		}
		parts[i] = part
	}
	return strings.Join(parts, ", ")
}
