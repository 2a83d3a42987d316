// =============================================================================
// CSV to JSON Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The converter has a
// single command that takes a file or directory path.
//
// COMMAND USAGE:
//   csv2json <path> [flags]
//
// FLAGS:
//   -o, --output <dir>        : Output directory for JSON files (default ".")
//   -v, --verbose             : Print per-file progress
//   -r, --recursive           : Descend into subdirectories
//       --no-overwrite        : Skip files whose JSON output already exists
//   -e, --encoding <name>     : Input encoding, or "auto" (default "auto")
//       --compact             : Write JSON without indentation
//       --config <file>       : YAML file with default option values
//       --xlsx                : Also convert .xlsx workbooks
//       --continue-on-error   : Keep converting after a failure
//       --version             : Print version information
//
// EXIT CODES:
//   0 : every file was converted or skipped
//   1 : invalid path, invalid options, or a conversion failure
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/converter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/logger"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// flagValues holds the raw flag values of one command instance.
type flagValues struct {
	cfgFile         string
	outputDir       string
	verbose         bool
	recursive       bool
	noOverwrite     bool
	encoding        string
	compact         bool
	xlsx            bool
	continueOnError bool
	debug           bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the csv2json command.
func NewRootCommand() *cobra.Command {
	flags := &flagValues{}

	rootCmd := &cobra.Command{
		Use:   "csv2json <path>",
		Short: "Convert CSV files to JSON",
		Long: `csv2json converts CSV files to JSON arrays of objects, one object per row,
keyed by the header row.

The path may be a single CSV file or a directory. Directories are scanned for
*.csv files (add -r to include subdirectories). The input encoding is detected
automatically unless given with -e, and the CSV delimiter is inferred from the
start of each file.

Example Usage:
  csv2json data.csv                    # Write ./data.json
  csv2json exports/ -r -o json/        # Convert a directory tree into json/
  csv2json legacy.csv -e windows-1252  # Use an explicit input encoding
  csv2json data.csv --compact          # Write JSON without indentation`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args[0])
		},
	}

	rootCmd.SetVersionTemplate(versionTemplate())

	f := rootCmd.Flags()
	f.StringVarP(&flags.outputDir, "output", "o", ".", "Output directory for JSON files")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	f.BoolVarP(&flags.recursive, "recursive", "r", false, "Recursively search for CSV files in subdirectories")
	f.BoolVar(&flags.noOverwrite, "no-overwrite", false, "Do not overwrite existing JSON files")
	f.StringVarP(&flags.encoding, "encoding", "e", "auto", "Input CSV file encoding (default: auto-detect)")
	f.BoolVar(&flags.compact, "compact", false, "Output compact JSON (not pretty-printed)")
	f.StringVar(&flags.cfgFile, "config", "", "Path to a YAML file with default option values")
	f.BoolVar(&flags.xlsx, "xlsx", false, "Also convert .xlsx workbooks (first sheet)")
	f.BoolVar(&flags.continueOnError, "continue-on-error", false, "Keep converting other files after a failure")
	f.BoolVar(&flags.debug, "debug", false, "Print dialect and parsing details (with --verbose)")
	_ = f.MarkHidden("debug")

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// run resolves the options and converts path.
func run(cmd *cobra.Command, flags *flagValues, path string) error {
	opts, err := resolveOptions(cmd, flags)
	if err != nil {
		return err
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Verbose)
	log.SetDebug(flags.debug)

	conv := converter.New(opts, log)
	summary, err := conv.ConvertPath(path)
	if summary.Total() > 1 {
		conv.Report(summary)
	}
	return err
}

// resolveOptions layers the config file and the explicitly set flags over
// the defaults.
func resolveOptions(cmd *cobra.Command, flags *flagValues) (config.Options, error) {
	opts, err := config.Load(flags.cfgFile)
	if err != nil {
		return opts, err
	}

	f := cmd.Flags()
	if f.Changed("output") {
		opts.OutputDir = flags.outputDir
	}
	if f.Changed("encoding") {
		opts.Encoding = flags.encoding
	}
	if f.Changed("verbose") {
		opts.Verbose = flags.verbose
	}
	if f.Changed("recursive") {
		opts.Recursive = flags.recursive
	}
	if f.Changed("no-overwrite") {
		opts.NoOverwrite = flags.noOverwrite
	}
	if f.Changed("compact") {
		opts.Compact = flags.compact
	}
	if f.Changed("xlsx") {
		opts.XLSX = flags.xlsx
	}
	if f.Changed("continue-on-error") {
		opts.ContinueOnError = flags.continueOnError
	}

	return opts, nil
}
