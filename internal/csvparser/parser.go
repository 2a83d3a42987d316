// =============================================================================
// CSV to JSON Converter - CSV Parser Module
// =============================================================================
//
// This module parses decoded CSV text into a Document of ordered records.
//
// PARSING PROCESS:
//   1. Sniff the dialect from the first SampleSize characters
//   2. Configure an encoding/csv reader with the sniffed dialect
//   3. Read the header row; its cells become the record keys
//   4. Read every remaining row and map it onto the header
//
// Cell text is never trimmed or converted: what is in the file is what ends
// up in the record.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/charset"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed CSV file.
type CSVData struct {
	// Headers contains the column headers from the first row.
	Headers []string

	// Records contains one record per data row, in file order.
	Records types.Document

	// Dialect is the dialect the file was parsed with.
	Dialect Dialect

	// Encoding is the charset label the text was decoded from, when parsed
	// from bytes.
	Encoding string

	// RowCount is the number of data rows (excluding the header).
	RowCount int

	// ColumnCount is the number of header columns.
	ColumnCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse sniffs the dialect of text and parses it with the first row as the
// header.
//
// RETURNS:
//   - The parsed data. Text with no content yields an empty Document.
//   - ErrNoDialect (wrapped) if the sample is not delimited text.
//   - A *csv.ParseError (wrapped) for malformed rows.
func Parse(text string) (*CSVData, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return &CSVData{Records: types.Document{}}, nil
	}

	sample := Sample(text)
	dialect, err := Sniff(sample, len(sample) < len(text))
	if err != nil {
		return nil, fmt.Errorf("failed to sniff dialect: %w", err)
	}

	return ParseWithDialect(text, dialect)
}

// ParseWithDialect parses text using a known dialect.
func ParseWithDialect(text string, dialect Dialect) (*CSVData, error) {
	reader := csv.NewReader(strings.NewReader(text))
	configureReader(reader, dialect)

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &CSVData{Records: types.Document{}, Dialect: dialect}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	records := types.Document{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, types.NewRecord(headers, row))
	}

	return &CSVData{
		Headers:     headers,
		Records:     records,
		Dialect:     dialect,
		RowCount:    len(records),
		ColumnCount: len(headers),
	}, nil
}

// ParseBytes decodes raw with the given charset label and parses the result.
func ParseBytes(raw []byte, encoding string) (*CSVData, error) {
	text, err := charset.Decode(raw, encoding)
	if err != nil {
		return nil, err
	}

	data, err := Parse(text)
	if err != nil {
		return nil, err
	}

	data.Encoding = encoding
	return data, nil
}

// configureReader configures the CSV reader for the dialect.
func configureReader(reader *csv.Reader, dialect Dialect) {
	reader.Comma = dialect.Delimiter

	// Short and long rows are handled by types.NewRecord.
	reader.FieldsPerRecord = -1

	// Stray quotes inside unquoted fields are kept as text.
	reader.LazyQuotes = true

	// TrimLeadingSpace strips any leading white space, tabs included, and
	// applies to the first field of a line too. That is wider than skipping
	// the spaces after a delimiter, but it lets a quoted field follow ", ".
	reader.TrimLeadingSpace = dialect.SkipInitialSpace
}
