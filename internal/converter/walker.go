package converter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/pkg/utils"
)

// =============================================================================
// RUN SUMMARY
// =============================================================================

// Summary aggregates the results of a run.
type Summary struct {
	Results   []Result
	Converted int
	Skipped   int
	Failed    int
	Elapsed   time.Duration
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusConverted:
		s.Converted++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Total returns the number of files looked at.
func (s *Summary) Total() int {
	return len(s.Results)
}

// =============================================================================
// PATH AND DIRECTORY CONVERSION
// =============================================================================

// ConvertPath converts a single file or every file in a directory.
// Paths that are neither return ErrInvalidPath.
func (c *Converter) ConvertPath(path string) (*Summary, error) {
	switch {
	case utils.IsFile(path):
		start := time.Now()
		summary := &Summary{}
		result, err := c.ConvertFile(path)
		summary.add(result)
		summary.Elapsed = time.Since(start)
		return summary, err
	case utils.IsDir(path):
		return c.ConvertDirectory(path)
	}
	return &Summary{}, fmt.Errorf("%s is %w", path, ErrInvalidPath)
}

// ConvertDirectory converts the files under root, descending into
// subdirectories only when the Recursive option is set. The first failure
// stops the walk and is returned, unless ContinueOnError is set; in that
// case every failure is logged and a combined error is returned at the end.
func (c *Converter) ConvertDirectory(root string) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	files, err := c.files.Discover(root)
	if err != nil {
		return summary, err
	}

	c.logger.Debug("Found %d file(s) under %s", len(files), root)

	for _, file := range files {
		result, err := c.ConvertFile(file)
		summary.add(result)
		if err == nil {
			continue
		}
		if !c.opts.ContinueOnError {
			summary.Elapsed = time.Since(start)
			return summary, err
		}
		c.logger.Error("%v", err)
	}

	summary.Elapsed = time.Since(start)
	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d file(s) failed to convert", summary.Failed, summary.Total())
	}
	return summary, nil
}

// Report prints the run summary in verbose mode.
func (c *Converter) Report(s *Summary) {
	c.logger.Info("")
	c.logger.Info("=== Conversion Complete ===")
	c.logger.Info("Total files:     %d", s.Total())
	c.logger.Info("Converted:       %d", s.Converted)
	c.logger.Info("Skipped:         %d", s.Skipped)
	c.logger.Info("Failed:          %d", s.Failed)
	c.logger.Info("Time elapsed:    %s", s.Elapsed.Round(time.Millisecond))

	for _, r := range s.Results {
		if r.Status == StatusConverted {
			c.logger.Debug("  %s -> %s (%d records, %s)", filepath.Base(r.Source), r.Output, r.Records, r.Encoding)
		}
	}
}
