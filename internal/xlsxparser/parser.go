// =============================================================================
// CSV to JSON Converter - XLSX Parser
// =============================================================================
//
// This module reads the first worksheet of an .xlsx workbook into the same
// Document shape the CSV parser produces. It is used when the --xlsx option
// is set.
//
// SHEET LAYOUT:
//   Row 1      : header (record keys)
//   Row 2..N   : data rows, one record each
//
// Cells are read as their formatted text, so numbers and dates appear the
// way the workbook displays them. Empty rows are skipped.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// SheetData represents a parsed worksheet.
type SheetData struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// SheetName is the name of the sheet that was read.
	SheetName string

	// Headers contains the cells of the first row.
	Headers []string

	// Records contains one record per non-empty data row.
	Records types.Document
}

// Parse reads the first worksheet of the workbook at filePath.
func Parse(filePath string) (*SheetData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	data := &SheetData{
		SourceFile: filePath,
		SheetName:  sheetName,
		Records:    types.Document{},
	}

	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return data, nil
	}

	data.Headers = rows[0]
	for _, row := range rows[1:] {
		data.Records = append(data.Records, types.NewRecord(data.Headers, row))
	}

	return data, nil
}

// dropEmptyRows removes rows with no cells. excelize returns an empty slice
// for a blank row between filled ones.
func dropEmptyRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		if len(row) > 0 {
			kept = append(kept, row)
		}
	}
	return kept
}
