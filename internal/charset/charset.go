// =============================================================================
// CSV to JSON Converter - Charset Module
// =============================================================================
//
// This module detects and decodes the character encoding of input files.
//
// PIPELINE:
//   1. Detect   : heuristic guess of the charset from raw bytes (chardet)
//   2. Lookup   : resolve a charset label to a decoder (WHATWG + IANA indexes)
//   3. Decode   : convert raw bytes to UTF-8 text, strictly
//
// Detection is best effort. A guess that cannot be turned into a decoder is
// reported as an error rather than replaced with a default charset.
//
// =============================================================================

package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Auto is the encoding selector that requests heuristic detection.
const Auto = "auto"

var (
	// ErrUndetectable is returned when no charset could be guessed.
	ErrUndetectable = errors.New("charset could not be detected")

	// ErrUnsupported is returned for labels that have no available decoder.
	ErrUnsupported = errors.New("unsupported charset")

	// ErrDecode is returned when the input is not valid in the chosen charset.
	ErrDecode = errors.New("decode error")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// aliases maps labels seen in the wild (Python codec names, chardet output)
// to labels understood by the x/text indexes.
var aliases = map[string]string{
	"latin-1":   "iso-8859-1",
	"latin_1":   "iso-8859-1",
	"utf8":      "utf-8",
	"utf_8":     "utf-8",
	"utf-8-sig": "utf-8",
	"gb-18030":  "gb18030",
	"ascii":     "us-ascii",
	"cp932":     "shift_jis",
	"sjis":      "shift_jis",
}

// =============================================================================
// DETECTION
// =============================================================================

// Detection is the outcome of a charset guess.
type Detection struct {
	// Charset is the detected charset label, e.g. "UTF-8" or "windows-1251".
	Charset string

	// Language is the detected language, if the detector reports one.
	Language string

	// Confidence is the detector's confidence from 0 to 100.
	Confidence int
}

// Detect guesses the charset of raw. Empty input and inconclusive results
// return ErrUndetectable.
func Detect(raw []byte) (Detection, error) {
	if len(raw) == 0 {
		return Detection{}, fmt.Errorf("%w: empty input", ErrUndetectable)
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrUndetectable, err)
	}
	if result == nil || strings.TrimSpace(result.Charset) == "" {
		return Detection{}, ErrUndetectable
	}

	return Detection{
		Charset:    result.Charset,
		Language:   result.Language,
		Confidence: result.Confidence,
	}, nil
}

// =============================================================================
// LOOKUP
// =============================================================================

// Lookup resolves a charset label to an encoding. Matching is
// case-insensitive and accepts both IANA names and WHATWG labels.
func Lookup(label string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	if name == "" {
		return nil, fmt.Errorf("%w: empty label", ErrUnsupported)
	}

	candidates := []string{name}
	if alias, ok := aliases[name]; ok {
		candidates = append(candidates, alias)
	}
	if dashed := strings.ReplaceAll(name, "_", "-"); dashed != name {
		candidates = append(candidates, dashed)
	}

	for _, c := range candidates {
		// IANA first so that iso-8859-1 stays Latin-1 instead of the
		// WHATWG windows-1252 superset.
		if enc, err := ianaindex.IANA.Encoding(c); err == nil && enc != nil {
			return enc, nil
		}
		if enc, err := htmlindex.Get(c); err == nil && enc != nil {
			return enc, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupported, label)
}

// Supported reports whether label resolves to a decoder. The Auto selector is
// always supported.
func Supported(label string) bool {
	if strings.EqualFold(label, Auto) {
		return true
	}
	_, err := Lookup(label)
	return err == nil
}

// =============================================================================
// DECODING
// =============================================================================

// Decode converts raw bytes in the given charset to UTF-8 text and removes a
// leading byte order mark. Invalid input is an ErrDecode error.
func Decode(raw []byte, label string) (string, error) {
	enc, err := Lookup(label)
	if err != nil {
		return "", err
	}

	if isUTF8(enc) {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: invalid %s byte at offset %d", ErrDecode, label, invalidOffset(raw))
		}
		return string(raw), nil
	}

	if isASCII(label) {
		if i := bytes.IndexFunc(raw, func(r rune) bool { return r >= utf8.RuneSelf }); i >= 0 {
			return "", fmt.Errorf("%w: invalid %s byte 0x%02x at offset %d", ErrDecode, label, raw[i], i)
		}
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, label, err)
	}

	// Decoders substitute U+FFFD for malformed input instead of failing.
	// A replacement character is only genuine if it encodes back to the
	// original bytes.
	if bytes.ContainsRune(out, utf8.RuneError) {
		back, _, err := transform.Bytes(enc.NewEncoder(), out)
		if err != nil || !bytes.Equal(back, raw) {
			return "", fmt.Errorf("%w: invalid %s byte sequence", ErrDecode, label)
		}
	}

	return strings.TrimPrefix(string(out), "\ufeff"), nil
}

// isASCII reports whether label names 7-bit ASCII. The indexes resolve it
// to a superset charset, so the range check is done here.
func isASCII(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "ascii", "us-ascii", "us_ascii", "ansi_x3.4-1968", "iso646-us":
		return true
	}
	return false
}

// isUTF8 reports whether enc is one of the UTF-8 encodings, which are decoded
// strictly instead of through a replacing transformer.
func isUTF8(enc encoding.Encoding) bool {
	if enc == unicode.UTF8 || enc == unicode.UTF8BOM {
		return true
	}
	name, err := ianaindex.IANA.Name(enc)
	return err == nil && strings.EqualFold(name, "UTF-8")
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
