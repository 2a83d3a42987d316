// =============================================================================
// CSV to JSON Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csv2json CLI application. It
// delegates everything to the cmd package.
//
// USAGE:
//   csv2json <file.csv>             - Convert one file
//   csv2json <dir> [-r]             - Convert every CSV file in a directory
//   csv2json --version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Cobra root command and version information
//   - internal/      : Core logic (charset, csvparser, jsonwriter, converter)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-JSON-conversion/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
