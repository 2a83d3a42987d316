// =============================================================================
// CSV to JSON Converter - Version Information
// =============================================================================
//
// The root command prints this with --version.
//
// OUTPUT:
//   CSV to JSON Converter
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/CSV-to-JSON-conversion/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// versionTemplate returns the text printed by --version.
func versionTemplate() string {
	return fmt.Sprintf("CSV to JSON Converter\nVersion:    %s\nBuild Date: %s\nGo Version: %s\n",
		Version, BuildDate, runtime.Version())
}
