package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/graphrefs/graphrefs/refgraph"
)

// NewResourcesCommand creates the 'resources' command
func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the records in the sample schema",
		Long: `List the records in the sample schema.

Shows each registered record with the number of references it declares
and the number of records that reference it. Use 'grefs refs <record>'
to inspect the reference fields of one record.`,
		Example: `  # List all records
  grefs resources

  # Show the reference fields of every record
  grefs resources --verbose

  # List records in JSON format
  grefs resources --format json`,
		RunE: runResourcesCommand,
	}
}

// RecordSummary contains summary information about one record type
type RecordSummary struct {
	Name       string
	RefCount   int
	Dependents int
	HasContext bool
	Refs       []string
}

// runResourcesCommand executes the 'resources' command
func runResourcesCommand(cmd *cobra.Command, args []string) error {
	scope := sampleScope()
	graph, err := refgraph.Build(scope)
	if err != nil {
		return err
	}

	summaries := make([]RecordSummary, 0, scope.Count())
	for _, rt := range scope.Types() {
		refs, err := scope.Refs(rt)
		if err != nil {
			return err
		}

		summary := RecordSummary{
			Name:       rt.Name(),
			RefCount:   len(refs),
			Dependents: len(graph.Dependents(rt)),
		}
		for _, name := range sortedRefFields(refs) {
			info := refs[name]
			if info.IsContext {
				summary.HasContext = true
			}
			summary.Refs = append(summary.Refs, info.String())
		}
		summaries = append(summaries, summary)
	}

	if debug {
		dumpValues(cmd.ErrOrStderr(), summaries)
	}

	writer := cmd.OutOrStdout()
	if outputFormat == "json" {
		return formatRecordsAsJSON(summaries, writer)
	}
	return formatRecordsAsTable(summaries, writer, verbose)
}

// formatRecordsAsTable formats record summaries as a human-readable table
func formatRecordsAsTable(summaries []RecordSummary, writer io.Writer, verbose bool) error {
	if len(summaries) == 0 {
		fmt.Fprintln(writer, "No records found.")
		return nil
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	bold.Fprintf(writer, "RECORDS (%d total)\n\n", len(summaries))

	if verbose {
		// Verbose mode: list the reference fields of every record
		for _, rec := range summaries {
			cyan.Fprintf(writer, "%s:\n", rec.Name)
			if len(rec.Refs) == 0 {
				fmt.Fprintln(writer, "  (no references)")
			}
			for _, line := range rec.Refs {
				fmt.Fprintf(writer, "  %s\n", line)
			}
			fmt.Fprintln(writer)
		}
		return nil
	}

	// Default mode: compact summary
	for _, rec := range summaries {
		cyan.Fprintf(writer, "  %-14s", rec.Name)

		// References
		switch rec.RefCount {
		case 0:
			fmt.Fprintf(writer, "-             ")
		case 1:
			fmt.Fprintf(writer, "%d reference   ", rec.RefCount)
		default:
			fmt.Fprintf(writer, "%d references  ", rec.RefCount)
		}

		// Dependents
		switch rec.Dependents {
		case 0:
			fmt.Fprintf(writer, "-             ")
		case 1:
			fmt.Fprintf(writer, "%d dependent   ", rec.Dependents)
		default:
			fmt.Fprintf(writer, "%d dependents  ", rec.Dependents)
		}

		if rec.HasContext {
			fmt.Fprintf(writer, "%s", green.Sprint("✓ context"))
		}

		fmt.Fprintln(writer)
	}

	return nil
}

// formatRecordsAsJSON formats record summaries as JSON
func formatRecordsAsJSON(summaries []RecordSummary, writer io.Writer) error {
	type JSONRecordSummary struct {
		Name           string   `json:"name"`
		RefCount       int      `json:"ref_count"`
		DependentCount int      `json:"dependent_count"`
		HasContext     bool     `json:"has_context,omitempty"`
		Refs           []string `json:"refs,omitempty"`
	}

	type JSONOutput struct {
		TotalCount int                 `json:"total_count"`
		Records    []JSONRecordSummary `json:"records"`
	}

	output := JSONOutput{
		TotalCount: len(summaries),
		Records:    make([]JSONRecordSummary, 0, len(summaries)),
	}

	for _, rec := range summaries {
		output.Records = append(output.Records, JSONRecordSummary{
			Name:           rec.Name,
			RefCount:       rec.RefCount,
			DependentCount: rec.Dependents,
			HasContext:     rec.HasContext,
			Refs:           rec.Refs,
		})
	}

	return NewJSONFormatter(writer).Format(output)
}
