// =============================================================================
// CSV to JSON Converter - Converter Module
// =============================================================================
//
// This module contains the conversion logic. It coordinates the pipeline for
// a single file and walks directories file by file.
//
// CONVERSION PIPELINE (per file):
//   1. Skip files that are not .csv (or .xlsx when enabled)
//   2. Read the file
//   3. Compute the output path: <output dir>/<stem>.json, and skip if it
//      exists and overwriting is disabled
//   4. Detect the encoding if the selector is "auto"
//   5. Decode, sniff the dialect and parse the rows
//   6. Write the JSON array (pretty or compact)
//   7. Report the source -> destination mapping
//
// Files are processed one at a time, in discovery order. A failure stops
// the run unless ContinueOnError is set.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/charset"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/jsonwriter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/logger"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/xlsxparser"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/pkg/utils"
)

// ErrInvalidPath is returned when the input is neither a file nor a directory.
var ErrInvalidPath = errors.New("not a valid file or directory")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Status is the outcome of processing one file.
type Status int

const (
	// StatusConverted means the JSON file was written.
	StatusConverted Status = iota

	// StatusSkipped means the file was left alone on purpose.
	StatusSkipped

	// StatusFailed means conversion raised an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// SkipReason explains why a file was skipped.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipNotCSV       SkipReason = "not a CSV file"
	SkipOutputExists SkipReason = "output exists"
)

// Result represents the outcome of processing a single file.
type Result struct {
	// Source is the path to the input file.
	Source string

	// Output is the path to the JSON file. It is set for skipped files too
	// when the skip happened after the path was computed.
	Output string

	// Status is the outcome.
	Status Status

	// SkipReason is set when Status is StatusSkipped.
	SkipReason SkipReason

	// Encoding is the charset the file was decoded with.
	Encoding string

	// Confidence is the detector confidence (0-100) when the encoding was
	// detected, and 0 when it was given explicitly.
	Confidence int

	// Records is the number of records written.
	Records int

	// Elapsed is the time taken to process the file.
	Elapsed time.Duration

	// Err is the conversion error when Status is StatusFailed.
	Err error
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Logger is the logging interface used by the converter.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Converter converts files according to one set of options.
type Converter struct {
	opts   config.Options
	files  *utils.FileManager
	logger Logger
}

// New creates a Converter. A nil logger discards all output.
func New(opts config.Options, log Logger) *Converter {
	if log == nil {
		log = logger.Discard()
	}
	return &Converter{
		opts:   opts,
		files:  utils.NewFileManager(opts.OutputDir, opts.Recursive),
		logger: log,
	}
}

// =============================================================================
// SINGLE FILE CONVERSION
// =============================================================================

// ConvertFile converts one file. Skips are reported through the Result with
// a nil error; any other problem is returned as an error and the Result has
// StatusFailed.
func (c *Converter) ConvertFile(path string) (Result, error) {
	start := time.Now()
	result := Result{Source: path}

	xlsx := c.opts.XLSX && utils.IsXLSX(path)
	if !utils.IsCSV(path) && !xlsx {
		c.logger.Info("Warning: %s is not a CSV file. Skipping.", path)
		result.Status = StatusSkipped
		result.SkipReason = SkipNotCSV
		return result, nil
	}

	var (
		doc types.Document
		err error
	)
	if xlsx {
		doc, err = c.readWorkbook(path, &result)
	} else {
		doc, err = c.readCSV(path, &result)
	}
	if err != nil {
		return c.fail(result, start, err)
	}
	if result.Status == StatusSkipped {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	if err := jsonwriter.WriteFile(result.Output, doc, jsonwriter.OptionsFor(c.opts.Compact)); err != nil {
		return c.fail(result, start, err)
	}

	result.Status = StatusConverted
	result.Records = len(doc)
	result.Elapsed = time.Since(start)
	c.logger.Info("Converted %s to %s", path, result.Output)

	return result, nil
}

// readCSV runs the overwrite, encoding and parse steps for a CSV file. It
// marks result as skipped when the output already exists.
func (c *Converter) readCSV(path string, result *Result) (types.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// The overwrite check only looks at the output path, so it runs before
	// detection can fail.
	if c.skipExisting(path, result) {
		return nil, nil
	}

	result.Encoding = strings.TrimSpace(c.opts.Encoding)
	if c.opts.IsAuto() {
		if len(strings.TrimSpace(string(raw))) == 0 {
			// Nothing to detect; empty input converts to an empty array.
			result.Encoding = "utf-8"
		} else {
			det, err := charset.Detect(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to detect encoding of %s: %w", path, err)
			}
			result.Encoding = det.Charset
			result.Confidence = det.Confidence
			c.logger.Info("Detected encoding for %s: %s (confidence %d%%)", path, det.Charset, det.Confidence)
		}
	}

	data, err := csvparser.ParseBytes(raw, result.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	c.logger.Debug("Parsed %d rows from %s (%s)", data.RowCount, path, data.Dialect)

	return data.Records, nil
}

// readWorkbook runs the overwrite and parse steps for an .xlsx file.
func (c *Converter) readWorkbook(path string, result *Result) (types.Document, error) {
	if c.skipExisting(path, result) {
		return nil, nil
	}

	data, err := xlsxparser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	c.logger.Debug("Parsed %d rows from sheet %q of %s", len(data.Records), data.SheetName, path)

	return data.Records, nil
}

// skipExisting sets the output path on result and reports whether the file
// must be skipped because its output exists and overwriting is disabled.
func (c *Converter) skipExisting(path string, result *Result) bool {
	result.Output = c.files.OutputPath(path)

	if c.opts.NoOverwrite && utils.FileExists(result.Output) {
		c.logger.Warn("%s already exists. Skipping due to --no-overwrite option.", result.Output)
		result.Status = StatusSkipped
		result.SkipReason = SkipOutputExists
		return true
	}
	return false
}

func (c *Converter) fail(result Result, start time.Time, err error) (Result, error) {
	result.Status = StatusFailed
	result.Err = err
	result.Elapsed = time.Since(start)
	return result, err
}
