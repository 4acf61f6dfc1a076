package confkit

// Kind identifies the inferred type of a parsed value.
//
// The parser produces KindInt, KindInt64, KindFloat64, and KindString.
// KindFloat32 and KindChar are reserved: no value text infers to them,
// but the store and the typed accessors handle entries of those kinds.
type Kind int

// Value kinds.
const (
	// KindInt is an integral numeric value within the int32 range.
	KindInt Kind = iota
	// KindInt64 is an integral numeric value outside the int32 range.
	KindInt64
	// KindFloat32 is reserved. The parser never infers it.
	KindFloat32
	// KindFloat64 is a numeric value with a fractional part, or one with
	// no integer representation (NaN, infinities).
	KindFloat64
	// KindString is any value text that does not parse as a number.
	KindString
	// KindChar is reserved. The parser never infers it.
	KindChar
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	default:
		return "unknown"
	}
}
