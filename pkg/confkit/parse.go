package confkit

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/randalmurphal/confkit/pkg/confkit/observability"
)

// DefaultMaxValueLen is the byte cap applied to string values.
// Longer values are truncated, never rejected. WithMaxValueLen adjusts
// the cap per load.
const DefaultMaxValueLen = 256

// maxLineBytes bounds a single input line. Lines beyond this fail the
// load with the scanner's error.
const maxLineBytes = 1 << 20

// asciiSpace lists the whitespace bytes trimmed around keys and values:
// space, horizontal tab, newline, vertical tab, form feed, carriage
// return. Trimming is byte-wise; multibyte Unicode spaces count as
// content.
const asciiSpace = " \t\n\v\f\r"

// Bounds for integral detection. 2^63 is exactly representable as a
// float64; math.MaxInt64 is not.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// parser accumulates entries for one input source.
type parser struct {
	cfg     loadConfig
	source  string
	line    int
	entries []Entry
	skipped int
}

// scan consumes r line by line, appending one entry per well-formed
// key=value line. Comments, blank lines, separator-less lines, and
// empty-key lines produce no entry.
func (p *parser) scan(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for sc.Scan() {
		p.line++
		line := sc.Text()

		// Comments are recognized on the first byte only; a line
		// starting with whitespace is never a comment.
		if line == "" || line[0] == '#' {
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			p.skip("no separator")
			continue
		}

		key := strings.Trim(line[:eq], asciiSpace)
		if key == "" {
			p.skip("empty key")
			continue
		}

		p.entries = append(p.entries, classify(key, line[eq+1:], p.cfg.maxValueLen))
	}
	return sc.Err()
}

// skip records a rejected line.
func (p *parser) skip(reason string) {
	p.skipped++
	observability.LogLineSkipped(p.cfg.logger, p.source, p.line, reason)
}

// classify builds the entry for a raw value, which is everything after
// the first '=' on the line.
//
// A value that parses completely as a float (strconv.ParseFloat syntax,
// surrounding whitespace ignored) is numeric; its kind depends on
// whether it is integral and on its magnitude. Everything else is a
// string.
func classify(key, raw string, maxValueLen int) Entry {
	trimmed := strings.Trim(raw, asciiSpace)
	if trimmed == "" {
		// Empty value text reads as integer zero.
		return Entry{Key: key, Kind: KindInt}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return numericEntry(key, f)
	}
	return stringEntry(key, raw, maxValueLen)
}

// numericEntry picks the kind for a parsed number. Integral values
// within the int32 range become KindInt, integral values beyond it
// become KindInt64, everything else (fractional, NaN, infinite)
// becomes KindFloat64. The split is by magnitude, not by how the value
// was written: "3.0" is a KindInt 3.
func numericEntry(key string, f float64) Entry {
	if f == math.Trunc(f) && f >= minInt64Float && f < maxInt64Float {
		n := int64(f)
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return Entry{Key: key, Kind: KindInt, num: n}
		}
		return Entry{Key: key, Kind: KindInt64, num: n}
	}
	return Entry{Key: key, Kind: KindFloat64, flt: f}
}

// stringEntry normalizes non-numeric value text: the leading run of
// whitespace and '=' bytes is stripped, trailing whitespace is
// trimmed, and the result is capped at maxValueLen bytes. The cap
// re-trims so a truncated value never ends in whitespace.
func stringEntry(key, raw string, maxValueLen int) Entry {
	s := strings.TrimLeft(raw, asciiSpace+"=")
	s = strings.TrimRight(s, asciiSpace)
	if len(s) > maxValueLen {
		s = strings.TrimRight(s[:maxValueLen], asciiSpace)
	}
	return Entry{Key: key, Kind: KindString, str: s}
}
