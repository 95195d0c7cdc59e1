package commands

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graphrefs/graphrefs"
	"github.com/graphrefs/graphrefs/internal/cli/config"
	"github.com/graphrefs/graphrefs/internal/cli/ui"
	"github.com/graphrefs/graphrefs/internal/infra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	// Global flags shared by all subcommands
	outputFormat string
	verbose      bool
	noColor      bool
	debug        bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grefs",
		Short: "Inspect typed record references and their dependency graph",
		Long: color.CyanString(`grefs - Typed Reference Introspection

grefs explores the reference structure of the sample record schema
bundled with the graphrefs library. Record types declare references to
each other with zero-size marker fields; grefs extracts those
references and derives the dependency graph.

Features:
  • Reference extraction per record (single, list, dict, attribute, context)
  • Direct and transitive dependency sets
  • Cycle detection and creation ordering
  • JSON output for tooling`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags win over grefs.yml and GREFS_* variables.
			flags := cmd.Root().PersistentFlags()
			if !flags.Changed("format") {
				outputFormat = cfg.Format
			}
			if !flags.Changed("no-color") {
				noColor = cfg.NoColor
			}
			if !flags.Changed("verbose") {
				verbose = cfg.Verbose
			}

			// Disable color output if requested
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: json or table")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show all details and extraction traces")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Dump raw introspection data to stderr")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewResourcesCommand())
	rootCmd.AddCommand(NewRefsCommand())
	rootCmd.AddCommand(NewDepsCommand())
	rootCmd.AddCommand(NewOrderCommand())
	rootCmd.AddCommand(NewDemoCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the grefs version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("grefs version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// unknownRecordError builds the error for a record name that is not in
// the sample schema, suggesting close names when the miss looks like a
// typo.
func unknownRecordError(scope *graphrefs.Scope, name string) error {
	if suggestions := ui.Suggest(name, scope.Names()); len(suggestions) > 0 {
		return fmt.Errorf("unknown record %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown record %q - run 'grefs resources' to list the sample schema", name)
}

// sampleScope builds the bundled schema scope, attaching a development
// logger when --verbose is set so extraction traces become visible.
func sampleScope() *graphrefs.Scope {
	if !verbose {
		return infra.Scope()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	return infra.Scope(graphrefs.WithLogger(logger))
}

// dumpValues writes a raw dump of introspection data for --debug runs.
func dumpValues(w io.Writer, values ...interface{}) {
	dumper := spew.NewDefaultConfig()
	dumper.Indent = "\t"
	dumper.DisableMethods = true
	dumper.DisablePointerAddresses = true
	dumper.Fdump(w, values...)
}
