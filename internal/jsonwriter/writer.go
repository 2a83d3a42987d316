// =============================================================================
// CSV to JSON Converter - JSON Writer Module
// =============================================================================
//
// This module serializes a Document as a JSON array of objects, one object
// per record, with keys in column order.
//
// OUTPUT FORMAT:
//   Pretty (default)                    Compact
//   [                                   [{"name":"Ann","age":"30"}]
//       {
//           "name": "Ann",
//           "age": "30"
//       }
//   ]
//
// Non-ASCII text and HTML characters are written as-is. Every file ends with
// a single newline.
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

// PrettyIndent is the indentation used when compact output is not requested.
const PrettyIndent = "    "

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// Options contains options for JSON generation.
type Options struct {
	// Indent is the string used for one level of indentation.
	// An empty Indent produces compact output with no whitespace.
	Indent string

	// EscapeHTML escapes <, > and & inside strings.
	// Default: false
	EscapeHTML bool
}

// DefaultOptions returns pretty-printing options.
func DefaultOptions() Options {
	return Options{Indent: PrettyIndent}
}

// CompactOptions returns options for compact output.
func CompactOptions() Options {
	return Options{}
}

// OptionsFor returns compact or pretty options.
func OptionsFor(compact bool) Options {
	if compact {
		return CompactOptions()
	}
	return DefaultOptions()
}

// =============================================================================
// JSON GENERATION FUNCTIONS
// =============================================================================

// Encode writes doc to w as a JSON array.
func Encode(w io.Writer, doc types.Document, opts Options) error {
	records := []types.Record(doc)
	if records == nil {
		records = []types.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(opts.EscapeHTML)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Marshal returns the encoded form of doc.
func Marshal(doc types.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes doc and writes it to path, replacing any existing file.
//
// The content is first written to a uniquely named temporary file in the
// same directory and then renamed over path, so readers never observe a
// half-written file. The directory must already exist.
func WriteFile(path string, doc types.Document, opts Options) error {
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}
