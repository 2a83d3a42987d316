// =============================================================================
// CSV to JSON Converter - Configuration Module
// =============================================================================
//
// This module holds the options for a conversion run. Options come from three
// layers, later layers winning:
//   1. Built-in defaults (DefaultOptions)
//   2. An optional YAML file (--config)
//   3. Command-line flags that were set explicitly
//
// EXAMPLE FILE:
//   output_dir: ./json
//   encoding: auto
//   recursive: true
//   no_overwrite: false
//   compact: false
//   verbose: true
//   continue_on_error: false
//   xlsx: false
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/charset")

// =============================================================================
// OPTIONS STRUCTURE
// =============================================================================

// Options describes one conversion run. It applies to every file converted
// in the run; nothing in it changes between files.
type Options struct {
	// OutputDir is the directory where JSON files are written.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// Encoding is the input charset label, or "auto" to detect it per file.
	// Default: "auto"
	Encoding string `yaml:"encoding"`

	// Recursive descends into subdirectories when converting a directory.
	Recursive bool `yaml:"recursive"`

	// NoOverwrite skips files whose JSON output already exists.
	NoOverwrite bool `yaml:"no_overwrite"`

	// Compact writes JSON without indentation.
	Compact bool `yaml:"compact"`

	// Verbose prints per-file progress.
	Verbose bool `yaml:"verbose"`

	// ContinueOnError logs conversion failures and moves on to the next file
	// instead of stopping the run.
	ContinueOnError bool `yaml:"continue_on_error"`

	// XLSX also converts .xlsx workbooks (first sheet).
	XLSX bool `yaml:"xlsx"`
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		OutputDir: ".",
		Encoding:  charset.Auto,
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads a YAML options file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&opts)
	return opts, nil
}

// applyDefaults fills fields left empty by a config file.
func applyDefaults(opts *Options) {
	if strings.TrimSpace(opts.OutputDir) == "" {
		opts.OutputDir = "."
	}
	if strings.TrimSpace(opts.Encoding) == "" {
		opts.Encoding = charset.Auto
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// IsAuto reports whether the encoding should be detected per file.
func (o Options) IsAuto() bool {
	return strings.EqualFold(strings.TrimSpace(o.Encoding), charset.Auto)
}

// Validate checks the options. It has no side effects: a missing output
// directory is not created and surfaces as a write failure for each file.
func (o Options) Validate() error {
	if !charset.Supported(o.Encoding) {
		return fmt.Errorf("invalid configuration: unknown encoding %q", o.Encoding)
	}

	info, err := os.Stat(o.OutputDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("invalid output directory %s: %w", o.OutputDir, err)
	case !info.IsDir():
		return fmt.Errorf("invalid output directory %s: not a directory", o.OutputDir)
	}

	return nil
}
