// =============================================================================
// CSV to JSON Converter - Dialect Sniffer
// =============================================================================
//
// This module infers the CSV dialect of a file from a leading sample.
//
// SNIFFING STRATEGY:
//   1. Take the first SampleSize characters of the decoded text.
//   2. Drop the trailing partial line if the sample was cut short.
//   3. For every candidate delimiter, count its occurrences on each line
//      (ignoring text inside quoted fields).
//   4. A candidate is accepted when the same non-zero count appears on a
//      large enough share of the lines ("consistency"). The required share
//      starts at 100% and is relaxed step by step down to 90%.
//   5. Ties are broken by the preferred delimiter order, then by the
//      higher per-line count, then by first appearance in the sample.
//
// Only double-quote quoting is recognised, since that is all encoding/csv
// can parse.
//
// =============================================================================

package csvparser

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SampleSize is the number of characters used to infer the dialect.
const SampleSize = 1024

// ErrNoDialect is returned when no delimiter can be inferred from the sample.
var ErrNoDialect = errors.New("could not determine delimiter")

// preferred lists delimiters that win ties, in order.
var preferred = []rune{',', '\t', ';', ' ', ':'}

const (
	startConsistency = 1.0
	minConsistency   = 0.9
	consistencyStep  = 0.01
)

// =============================================================================
// DIALECT STRUCTURE
// =============================================================================

// Dialect holds the CSV formatting parameters inferred from a sample.
type Dialect struct {
	// Delimiter separates fields.
	Delimiter rune

	// Quoted is true when the sample contains double-quoted fields.
	Quoted bool

	// SkipInitialSpace is true when delimiters are followed by a space.
	SkipInitialSpace bool
}

// String returns a readable description of the dialect, used in debug logs.
func (d Dialect) String() string {
	var b strings.Builder
	b.WriteString("delimiter=")
	switch d.Delimiter {
	case '\t':
		b.WriteString(`\t`)
	case ' ':
		b.WriteString("space")
	default:
		b.WriteRune(d.Delimiter)
	}
	if d.Quoted {
		b.WriteString(" quoted")
	}
	if d.SkipInitialSpace {
		b.WriteString(" skipinitialspace")
	}
	return b.String()
}

// =============================================================================
// SNIFFING
// =============================================================================

// candidate tracks the per-line statistics of one possible delimiter.
type candidate struct {
	char        rune
	firstSeen   int
	mode        int
	consistency float64
}

// Sample returns the leading SampleSize characters of text.
func Sample(text string) string {
	n := 0
	for i := range text {
		if n == SampleSize {
			return text[:i]
		}
		n++
	}
	return text
}

// Sniff infers the dialect of the CSV text in sample. The sample should be
// taken with Sample.
func Sniff(sample string, truncated bool) (Dialect, error) {
	lines := sampleLines(sample, truncated)
	if len(lines) == 0 {
		return Dialect{}, ErrNoDialect
	}

	counts, order := countChars(lines)
	if len(counts) == 0 {
		return Dialect{}, ErrNoDialect
	}

	stats := make([]candidate, 0, len(counts))
	for _, ch := range order {
		mode, hits := frequencyMode(counts[ch])
		if mode == 0 {
			continue
		}
		stats = append(stats, candidate{
			char:        ch,
			firstSeen:   len(stats),
			mode:        mode,
			consistency: float64(hits) / float64(len(lines)),
		})
	}

	for threshold := startConsistency; threshold >= minConsistency-1e-9; threshold -= consistencyStep {
		var accepted []candidate
		for _, c := range stats {
			if c.consistency >= threshold-1e-9 {
				accepted = append(accepted, c)
			}
		}
		if len(accepted) == 0 {
			continue
		}

		best := pick(accepted)
		return Dialect{
			Delimiter:        best,
			Quoted:           hasQuotedField(sample, best),
			SkipInitialSpace: followedBySpace(lines[0], best),
		}, nil
	}

	return Dialect{}, ErrNoDialect
}

// sampleLines splits the sample into non-empty logical lines. A line break
// inside a quoted field does not end a line. When the sample was cut short
// the trailing partial line is dropped.
func sampleLines(sample string, truncated bool) []string {
	sample = strings.ReplaceAll(sample, "\r\n", "\n")
	sample = strings.ReplaceAll(sample, "\r", "\n")

	var raw []string
	lineStart := 0
	walkUnquoted(sample, func(i int, ch rune) {
		if ch == '\n' {
			raw = append(raw, sample[lineStart:i])
			lineStart = i + 1
		}
	})
	raw = append(raw, sample[lineStart:])

	if truncated && len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// countChars returns, for each candidate character, its count on every line.
// Characters inside quoted fields are not counted. order lists the
// characters by first appearance.
func countChars(lines []string) (map[rune][]int, []rune) {
	counts := make(map[rune][]int)
	var order []rune

	for i, line := range lines {
		walkUnquoted(line, func(_ int, ch rune) {
			if !isCandidate(ch) {
				return
			}
			if _, ok := counts[ch]; !ok {
				counts[ch] = make([]int, len(lines))
				order = append(order, ch)
			}
			counts[ch][i]++
		})
	}

	return counts, order
}

// walkUnquoted calls visit with the byte offset of every rune of s that is
// not part of a quoted field. A double quote opens a field only at the start
// of a line or right after a possible delimiter; anywhere else it is plain
// text, as in 55" TV. Inside a quoted field "" is an escaped quote.
func walkUnquoted(s string, visit func(i int, ch rune)) {
	inQuotes := false
	prev := '\n'
	for i := 0; i < len(s); {
		ch, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case inQuotes && ch == '"':
			if strings.HasPrefix(s[i+size:], `"`) {
				size++
			} else {
				inQuotes = false
			}
		case inQuotes:
		case ch == '"' && (prev == '\n' || isCandidate(prev)):
			inQuotes = true
		default:
			visit(i, ch)
		}
		prev = ch
		i += size
	}
}

// isCandidate reports whether ch could be a field delimiter.
func isCandidate(ch rune) bool {
	switch {
	case ch == '"' || ch == '\'' || ch == '\n' || ch == '\r' || ch == utf8.RuneError:
		return false
	case unicode.IsLetter(ch) || unicode.IsDigit(ch):
		return false
	}
	return true
}

// frequencyMode returns the most common per-line count and how many lines
// have it. Ties go to the larger count.
func frequencyMode(perLine []int) (mode, hits int) {
	freq := make(map[int]int)
	for _, n := range perLine {
		freq[n]++
	}
	for n, f := range freq {
		if f > hits || (f == hits && n > mode) {
			mode, hits = n, f
		}
	}
	return mode, hits
}

// pick chooses a delimiter among accepted candidates.
func pick(accepted []candidate) rune {
	for _, p := range preferred {
		for _, c := range accepted {
			if c.char == p {
				return p
			}
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].mode != accepted[j].mode {
			return accepted[i].mode > accepted[j].mode
		}
		return accepted[i].firstSeen < accepted[j].firstSeen
	})
	return accepted[0].char
}

// hasQuotedField reports whether a field in the sample opens with a double
// quote, either at the start of a line or right after the delimiter.
func hasQuotedField(sample string, delim rune) bool {
	prev := '\n'
	for _, ch := range sample {
		if ch == '"' && (prev == '\n' || prev == '\r' || prev == delim || (prev == ' ' && delim != ' ')) {
			return true
		}
		prev = ch
	}
	return false
}

// followedBySpace reports whether every delimiter on line is followed by a
// space.
func followedBySpace(line string, delim rune) bool {
	if delim == ' ' {
		return false
	}
	total := strings.Count(line, string(delim))
	if total == 0 {
		return false
	}
	return total == strings.Count(line, string(delim)+" ")
}
