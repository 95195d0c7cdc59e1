package commands

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/graphrefs/graphrefs/refgraph"
)

// NewOrderCommand creates the 'order' command
func NewOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Show a creation order for the sample schema",
		Long: `Show a creation order for the sample schema.

Builds the reference graph over every record in the schema and sorts
it so that each record comes after the records it references. Fails
when the schema contains a reference cycle, and names the cycle.

With --verbose the full analysis report is printed instead, including
the dependents of each record.`,
		Example: `  # Print the creation order
  grefs order

  # Print the full analysis report
  grefs order --verbose

  # Output in JSON format
  grefs order --format json`,
		RunE: runOrderCommand,
	}
}

// runOrderCommand executes the 'order' command
func runOrderCommand(cmd *cobra.Command, args []string) error {
	scope := sampleScope()
	writer := cmd.OutOrStdout()

	if verbose && outputFormat != "json" {
		report, err := refgraph.Analyze(scope)
		if err != nil {
			return err
		}
		fmt.Fprint(writer, report.String())
		return nil
	}

	graph, err := refgraph.Build(scope)
	if err != nil {
		return err
	}

	order, err := graph.CreationOrder()
	if err != nil {
		return err
	}

	if debug {
		dumpValues(cmd.ErrOrStderr(), order)
	}

	if outputFormat == "json" {
		return formatOrderAsJSON(graph, order, writer)
	}
	return formatOrderAsTable(graph, order, writer)
}

// formatOrderAsTable formats a creation order as a numbered list
func formatOrderAsTable(graph *refgraph.Graph, order []reflect.Type, writer io.Writer) error {
	bold := color.New(color.Bold)
	bold.Fprintf(writer, "CREATION ORDER (%d records)\n\n", len(order))

	for i, rt := range order {
		deps := graph.Dependencies(rt)
		if len(deps) == 0 {
			fmt.Fprintf(writer, "  %2d. %s\n", i+1, rt.Name())
			continue
		}

		names := make([]string, len(deps))
		for j, dep := range deps {
			names[j] = dep.Name()
		}
		fmt.Fprintf(writer, "  %2d. %s (after %s)\n", i+1, rt.Name(), strings.Join(names, ", "))
	}

	return nil
}

// formatOrderAsJSON formats a creation order as JSON
func formatOrderAsJSON(graph *refgraph.Graph, order []reflect.Type, writer io.Writer) error {
	type JSONEntry struct {
		Position     int      `json:"position"`
		Record       string   `json:"record"`
		Dependencies []string `json:"dependencies,omitempty"`
	}

	type JSONOutput struct {
		TotalCount int         `json:"total_count"`
		Order      []JSONEntry `json:"order"`
	}

	output := JSONOutput{
		TotalCount: len(order),
		Order:      make([]JSONEntry, 0, len(order)),
	}

	for i, rt := range order {
		deps := graph.Dependencies(rt)
		names := make([]string, len(deps))
		for j, dep := range deps {
			names[j] = dep.Name()
		}
		output.Order = append(output.Order, JSONEntry{
			Position:     i + 1,
			Record:       rt.Name(),
			Dependencies: names,
		})
	}

	return NewJSONFormatter(writer).Format(output)
}
