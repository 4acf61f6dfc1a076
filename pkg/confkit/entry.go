package confkit

import (
	"strconv"
)

// Entry is one parsed key/value pair.
//
// Entries are immutable values. Exactly one payload is meaningful,
// selected by Kind: the integral kinds and KindChar carry an integer,
// the float kinds carry a float64, KindString carries the value text.
type Entry struct {
	// Key is the entry's key, whitespace-trimmed.
	Key string
	// Kind is the inferred kind of the value.
	Kind Kind

	num int64
	flt float64
	str string
}

// Value returns the payload boxed according to the entry's kind:
// int for KindInt, int64 for KindInt64, float64 for KindFloat32 and
// KindFloat64, string for KindString, byte for KindChar.
func (e Entry) Value() any {
	switch e.Kind {
	case KindInt:
		return int(e.num)
	case KindInt64:
		return e.num
	case KindFloat32, KindFloat64:
		return e.flt
	case KindString:
		return e.str
	case KindChar:
		return byte(e.num)
	default:
		return nil
	}
}

// Int returns the integer payload and whether the entry carries one
// (KindInt, KindInt64, or KindChar).
func (e Entry) Int() (int64, bool) {
	switch e.Kind {
	case KindInt, KindInt64, KindChar:
		return e.num, true
	}
	return 0, false
}

// Float returns the float payload and whether the entry carries one
// (KindFloat32 or KindFloat64).
func (e Entry) Float() (float64, bool) {
	switch e.Kind {
	case KindFloat32, KindFloat64:
		return e.flt, true
	}
	return 0, false
}

// Text returns the string payload and whether the entry carries one
// (KindString).
func (e Entry) Text() (string, bool) {
	if e.Kind == KindString {
		return e.str, true
	}
	return "", false
}

// ValueText renders the payload as text.
func (e Entry) ValueText() string {
	switch e.Kind {
	case KindInt, KindInt64:
		return strconv.FormatInt(e.num, 10)
	case KindFloat32, KindFloat64:
		return strconv.FormatFloat(e.flt, 'g', -1, 64)
	case KindString:
		return e.str
	case KindChar:
		return string(byte(e.num))
	default:
		return ""
	}
}

// String renders the entry as "key=value" for display.
func (e Entry) String() string {
	return e.Key + "=" + e.ValueText()
}
