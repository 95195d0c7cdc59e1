package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/graphrefs/graphrefs"
)

// NewRefsCommand creates the 'refs' command
func NewRefsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <record>",
		Short: "Show the reference fields of a record",
		Long: `Show the reference fields of a record.

Extracts the reference descriptors of one record type from the sample
schema: which fields reference other records, the shape of each
reference (single, list, dict, or context), the attribute it targets
if any, and whether it is optional.`,
		Example: `  # Show the references declared by the Instance record
  grefs refs Instance

  # Include the raw descriptors on stderr
  grefs refs Instance --debug

  # Output in JSON format for tooling
  grefs refs Instance --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runRefsCommand,
	}
}

// runRefsCommand executes the 'refs' command
func runRefsCommand(cmd *cobra.Command, args []string) error {
	scope := sampleScope()
	rt, ok := scope.Lookup(args[0])
	if !ok {
		return unknownRecordError(scope, args[0])
	}

	refs, err := scope.Refs(rt)
	if err != nil {
		return err
	}

	if debug {
		dumpValues(cmd.ErrOrStderr(), refs)
	}

	writer := cmd.OutOrStdout()
	if outputFormat == "json" {
		return formatRefsAsJSON(args[0], refs, writer)
	}
	return formatRefsAsTable(args[0], refs, writer)
}

// sortedRefFields returns the field names of a descriptor map in sorted
// order.
func sortedRefFields(refs map[string]graphrefs.RefInfo) []string {
	fields := make([]string, 0, len(refs))
	for name := range refs {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// formatRefsAsTable formats reference descriptors as a human-readable table
func formatRefsAsTable(record string, refs map[string]graphrefs.RefInfo, writer io.Writer) error {
	if len(refs) == 0 {
		fmt.Fprintf(writer, "%s declares no references.\n", record)
		return nil
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	bold.Fprintf(writer, "REFERENCES of %s (%d total)\n\n", record, len(refs))

	for _, name := range sortedRefFields(refs) {
		info := refs[name]

		cyan.Fprintf(writer, "  %-16s", info.Field)
		fmt.Fprintf(writer, "%-8s ", info.Kind())

		switch {
		case info.IsContext:
			fmt.Fprintf(writer, "%q", info.Attr)
		case info.Attr != "":
			fmt.Fprintf(writer, "%s.%s", info.TargetName(), info.Attr)
		default:
			fmt.Fprintf(writer, "%s", info.TargetName())
		}

		if info.IsOptional {
			fmt.Fprintf(writer, "  %s", green.Sprint("✓ optional"))
		}

		fmt.Fprintln(writer)
	}

	return nil
}

// formatRefsAsJSON formats reference descriptors as JSON
func formatRefsAsJSON(record string, refs map[string]graphrefs.RefInfo, writer io.Writer) error {
	type JSONRef struct {
		Field    string `json:"field"`
		Kind     string `json:"kind"`
		Target   string `json:"target,omitempty"`
		Attr     string `json:"attr,omitempty"`
		Optional bool   `json:"optional,omitempty"`
	}

	type JSONOutput struct {
		Record     string    `json:"record"`
		TotalCount int       `json:"total_count"`
		Refs       []JSONRef `json:"refs"`
	}

	output := JSONOutput{
		Record:     record,
		TotalCount: len(refs),
		Refs:       make([]JSONRef, 0, len(refs)),
	}

	for _, name := range sortedRefFields(refs) {
		info := refs[name]
		output.Refs = append(output.Refs, JSONRef{
			Field:    info.Field,
			Kind:     info.Kind().String(),
			Target:   info.TargetName(),
			Attr:     info.Attr,
			Optional: info.IsOptional,
		})
	}

	return NewJSONFormatter(writer).Format(output)
}
