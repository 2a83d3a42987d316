// =============================================================================
// CSV to JSON Converter - Shared Types
// =============================================================================
//
// This package contains the data model shared by the parsers and the JSON
// writer. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - jsonwriter
//   - converter
//
// DATA MODEL:
//   Document  = ordered sequence of Records (one per data row)
//   Record    = ordered sequence of Fields (one per header column)
//   Field     = header name + cell text
//
// All cell values are kept as text. No numeric or boolean coercion happens
// anywhere in the pipeline.
//
// =============================================================================

package types

import (
	"bytes"
	"encoding/json"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// Field is a single header -> value pair within a Record.
type Field struct {
	// Key is the column header from the first row of the source file.
	Key string

	// Value is the raw cell text.
	Value string
}

// Record represents one data row as an ordered header -> value mapping.
// Key order follows column order in the source file.
type Record struct {
	Fields []Field
}

// Document is the full ordered sequence of Records from one input file.
type Document []Record

// NewRecord builds a Record from a header row and a data row.
//
// MAPPING RULES:
//   - Cells missing at the end of a short row map to "".
//   - Cells beyond the last header column are dropped.
//   - A repeated header keeps its first position and takes the value of its
//     last occurrence.
func NewRecord(headers, row []string) Record {
	fields := make([]Field, 0, len(headers))
	seen := make(map[string]int, len(headers))

	for i, header := range headers {
		value := ""
		if i < len(row) {
			value = row[i]
		}

		if pos, ok := seen[header]; ok {
			fields[pos].Value = value
			continue
		}

		seen[header] = len(fields)
		fields = append(fields, Field{Key: header, Value: value})
	}

	return Record{Fields: fields}
}

// Get returns the value for key and whether it is present.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Keys returns the record's keys in column order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.Fields)
}

// =============================================================================
// JSON ENCODING
// =============================================================================

// MarshalJSON encodes the record as a JSON object with keys in column order.
// HTML characters and non-ASCII text are left unescaped; the enclosing
// json.Encoder takes care of indentation.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, f.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, f.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string literal without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
