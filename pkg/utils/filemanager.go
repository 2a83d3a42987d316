// =============================================================================
// CSV to JSON Converter - File Manager Utility
// =============================================================================
//
// This module provides file helpers for the converter:
//   - Extension checks for candidate input files
//   - Output path computation
//   - File discovery (top-level or recursive)
//
// DISCOVERY ORDER:
//   Files are returned in lexical order, directory by directory, which is the
//   order filepath.WalkDir visits them.
//
// =============================================================================

package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extensions recognised by the converter.
const (
	CSVExtension  = ".csv"
	XLSXExtension = ".xlsx"
	JSONExtension = ".json"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles path handling for a conversion run.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// Recursive makes discovery descend into subdirectories.
	Recursive bool
}

// NewFileManager creates a new FileManager.
func NewFileManager(outputDir string, recursive bool) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		Recursive: recursive,
	}
}

// OutputPath returns the JSON path for an input file: the output directory
// joined with the input's base name, extension replaced by .json.
//
// EXAMPLE:
//   OutputPath("data/2024/a.csv") with OutputDir "out" -> "out/a.json"
func (fm *FileManager) OutputPath(inputPath string) string {
	return OutputPath(fm.OutputDir, inputPath)
}

// Discover lists the regular files under root.
func (fm *FileManager) Discover(root string) ([]string, error) {
	return DiscoverFiles(root, fm.Recursive)
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverFiles lists the files under root. Without recursive, only the files
// directly inside root are returned. Files are not filtered by extension.
func DiscoverFiles(root string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return files, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// HasExtension reports whether path ends in ext, ignoring case.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// IsCSV reports whether path has a .csv extension, ignoring case.
func IsCSV(path string) bool {
	return HasExtension(path, CSVExtension)
}

// IsXLSX reports whether path has a .xlsx extension, ignoring case.
func IsXLSX(path string) bool {
	return HasExtension(path, XLSXExtension)
}

// OutputPath returns outputDir joined with the stem of inputPath plus .json.
func OutputPath(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+JSONExtension)
}

// FileExists checks if a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
