/*
Package confkit parses plain key=value configuration files into an
immutable, typed store with defaulted lookups.

# Overview

confkit reads files (or any io.Reader) line by line, infers a kind for
every value, and answers typed lookups that fall back to a
caller-supplied default instead of failing. A missing key, a kind
mismatch, or a nil store never produces an error; it produces the
default.

# File Format

One pair per line, first '=' splits key from value:

	# comment lines start with '#' in column one
	port = 8080
	ratio = 0.75
	greeting = hello world

Lines without '=' and lines whose key trims to nothing are skipped.
Keys are trimmed of surrounding ASCII whitespace. Later '=' bytes
belong to the value. Duplicate keys are all stored; lookups see the
first occurrence.

# Kind Inference

A value that parses completely as a number (strconv.ParseFloat syntax,
surrounding ASCII whitespace ignored) is numeric. Integral numerics
within the int32 range become KindInt, integral numerics beyond it
become KindInt64, all other numerics become KindFloat64. The split is
by magnitude: "3.0" is a KindInt, "2147483648" a KindInt64. An empty
value reads as KindInt zero.

Everything else is a KindString: the leading run of whitespace and '='
bytes is stripped, trailing whitespace is trimmed, and the text is
capped at DefaultMaxValueLen bytes.

KindFloat32 and KindChar are reserved; no value text infers to them.

# Lookups and Defaults

Typed accessors mirror the kinds:

	store, err := confkit.Load("app.conf")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	port := store.Int("port", 9000)          // 8080
	ratio := store.Float64("ratio", 0.5)     // 0.75
	name := store.String("greeting", "hi")   // "hello world"
	missing := store.Int("workers", 4)       // 4

Exactly two coercions exist: Int narrows a KindInt64 to 32 bits
(two's complement, sign may change) and Float32 narrows a KindFloat64.
Everything else is strict; in particular Int64 does not widen a
KindInt.

# Observability

Loads are silent by default. WithLogger enables slog diagnostics,
WithMetrics OpenTelemetry counters and histograms, WithTracing a span
per load. See the observability subpackage.

# Thread Safety

A Store is immutable after construction and safe for concurrent
readers. Close is not synchronized against concurrent lookups; close
only after readers are done, or simply let the store be collected.
*/
package confkit
