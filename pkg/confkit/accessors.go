package confkit

// Typed accessors. Each resolves its key through Lookup and returns
// defaultVal when the key is missing or the entry's kind does not
// match. Exactly two coercions exist: Int narrows KindInt64 and
// Float32 narrows KindFloat64. Accessors never allocate and never
// fail; a nil or closed store yields the default.

// Int returns the int value for key, or defaultVal if missing or not
// an integral kind.
//
// Accepts:
//   - KindInt: used directly
//   - KindInt64: truncated to 32 bits, two's complement, so the sign
//     may change (4294967296 reads as 0, 2147483648 as -2147483648)
func (s *Store) Int(key string, defaultVal int) int {
	e, ok := s.Lookup(key)
	if !ok {
		return defaultVal
	}
	switch e.Kind {
	case KindInt:
		return int(e.num)
	case KindInt64:
		return int(int32(e.num))
	}
	return defaultVal
}

// Int64 returns the int64 value for key, or defaultVal if missing or
// not KindInt64. KindInt entries do not widen; the two integral kinds
// are distinct.
func (s *Store) Int64(key string, defaultVal int64) int64 {
	e, ok := s.Lookup(key)
	if !ok || e.Kind != KindInt64 {
		return defaultVal
	}
	return e.num
}

// Float32 returns the float32 value for key, or defaultVal if missing
// or not a float kind.
//
// Accepts:
//   - KindFloat32: used directly
//   - KindFloat64: narrowed to float32, which loses precision and may
//     round to an infinity
func (s *Store) Float32(key string, defaultVal float32) float32 {
	e, ok := s.Lookup(key)
	if !ok {
		return defaultVal
	}
	switch e.Kind {
	case KindFloat32, KindFloat64:
		return float32(e.flt)
	}
	return defaultVal
}

// Float64 returns the float64 value for key, or defaultVal if missing
// or not KindFloat64.
func (s *Store) Float64(key string, defaultVal float64) float64 {
	e, ok := s.Lookup(key)
	if !ok || e.Kind != KindFloat64 {
		return defaultVal
	}
	return e.flt
}

// String returns the string value for key, or defaultVal if missing or
// not KindString. The result shares the store's memory; no copy is
// made.
func (s *Store) String(key, defaultVal string) string {
	e, ok := s.Lookup(key)
	if !ok || e.Kind != KindString {
		return defaultVal
	}
	return e.str
}

// Char returns the char value for key, or defaultVal if missing or not
// KindChar. KindChar is reserved and never inferred, so Char yields
// the default for every parsed entry.
func (s *Store) Char(key string, defaultVal byte) byte {
	e, ok := s.Lookup(key)
	if !ok || e.Kind != KindChar {
		return defaultVal
	}
	return byte(e.num)
}
