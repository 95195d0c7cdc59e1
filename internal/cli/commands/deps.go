package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/graphrefs/graphrefs"
)

// NewDepsCommand creates the 'deps' command
func NewDepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <record>",
		Short: "Show the record types a record depends on",
		Long: `Show the record types a record depends on.

A record depends on every record type it references through a
non-context field. With --transitive the set is closed over the
references of the referenced records as well; the starting record
itself appears only when a reference cycle leads back to it.`,
		Example: `  # Direct dependencies of the Instance record
  grefs deps Instance

  # Follow references transitively
  grefs deps Instance --transitive

  # Output in JSON format
  grefs deps Instance --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runDepsCommand,
	}

	// Add command-specific flags
	cmd.Flags().Bool("transitive", false, "Follow references transitively")

	return cmd
}

// runDepsCommand executes the 'deps' command
func runDepsCommand(cmd *cobra.Command, args []string) error {
	transitive, err := cmd.Flags().GetBool("transitive")
	if err != nil {
		return err
	}

	scope := sampleScope()
	rt, ok := scope.Lookup(args[0])
	if !ok {
		return unknownRecordError(scope, args[0])
	}

	deps, err := scope.Dependencies(rt, transitive)
	if err != nil {
		return err
	}

	if debug {
		dumpValues(cmd.ErrOrStderr(), deps)
	}

	writer := cmd.OutOrStdout()
	if outputFormat == "json" {
		return formatDepsAsJSON(args[0], transitive, deps, writer)
	}
	return formatDepsAsTable(args[0], transitive, deps, writer)
}

// formatDepsAsTable formats a dependency set as a human-readable table
func formatDepsAsTable(record string, transitive bool, deps graphrefs.TypeSet, writer io.Writer) error {
	mode := "direct"
	if transitive {
		mode = "transitive"
	}

	if deps.Len() == 0 {
		fmt.Fprintf(writer, "%s has no %s dependencies.\n", record, mode)
		return nil
	}

	bold := color.New(color.Bold)
	bold.Fprintf(writer, "DEPENDENCIES of %s (%s, %d total)\n\n", record, mode, deps.Len())

	for _, name := range deps.Names() {
		fmt.Fprintf(writer, "  %s\n", name)
	}

	return nil
}

// formatDepsAsJSON formats a dependency set as JSON
func formatDepsAsJSON(record string, transitive bool, deps graphrefs.TypeSet, writer io.Writer) error {
	type JSONOutput struct {
		Record       string   `json:"record"`
		Transitive   bool     `json:"transitive"`
		TotalCount   int      `json:"total_count"`
		Dependencies []string `json:"dependencies"`
	}

	output := JSONOutput{
		Record:       record,
		Transitive:   transitive,
		TotalCount:   deps.Len(),
		Dependencies: deps.Names(),
	}

	return NewJSONFormatter(writer).Format(output)
}
