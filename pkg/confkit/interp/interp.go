// Package interp provides read-time ${key} interpolation over a parsed
// configuration store.
//
// Interpolation is a display-layer view: it renders text with
// references to store keys substituted by their value text. The store
// itself is never altered; entries keep their verbatim parsed values.
package interp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/randalmurphal/confkit/pkg/confkit"
)

// Regular expressions for reference patterns.
var (
	// bracePattern matches ${key} - key can contain alphanumeric and underscore.
	bracePattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

	// dollarPattern matches $key where key is followed by a non-word character
	// or end of string. This prevents $port from matching inside $portNumber.
	dollarPattern = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)(?:\b|$)`)
)

// Expander substitutes key references in strings with store values.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
//
// Substitution is single-pass: a referenced entry's value is inserted
// as-is, references inside it are not expanded again. Keys outside the
// [a-zA-Z_][a-zA-Z0-9_]* grammar cannot be referenced.
type Expander struct {
	missingAction MissingAction
	braceStyle    bool
	dollarStyle   bool
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep placeholders as-is)
//   - BraceStyle: enabled (${key})
//   - DollarStyle: enabled ($key)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missingAction: MissingKeep,
		braceStyle:    true,
		dollarStyle:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand substitutes key references in s with values from store.
//
// Errors are only returned when MissingAction is MissingError and a
// referenced key is not found.
//
// Example:
//
//	// store parsed from: host=db.local  url=${host}:5432
//	exp := interp.NewExpander()
//	result, err := exp.Expand(store, store.String("url", ""))
//	// result: "db.local:5432"
func (e *Expander) Expand(store *confkit.Store, s string) (string, error) {
	if s == "" {
		return "", nil
	}

	result := s
	var missingKeys []string

	substitute := func(match, key string) string {
		if entry, ok := store.Lookup(key); ok {
			return entry.ValueText()
		}
		// Key not found.
		switch e.missingAction {
		case MissingEmpty:
			return ""
		case MissingError:
			missingKeys = append(missingKeys, key)
			return match // Keep for now, will return error.
		default: // MissingKeep
			return match
		}
	}

	// Expand ${key} patterns first (more specific).
	if e.braceStyle {
		result = bracePattern.ReplaceAllStringFunc(result, func(match string) string {
			return substitute(match, match[2:len(match)-1])
		})
	}

	// Expand $key patterns (less specific, after braces).
	if e.dollarStyle {
		result = dollarPattern.ReplaceAllStringFunc(result, func(match string) string {
			return substitute(match, match[1:])
		})
	}

	if len(missingKeys) > 0 {
		return result, &UndefinedKeyError{Names: missingKeys}
	}

	return result, nil
}

// ExpandStore renders every visible key's value text with references
// expanded. Shadowed duplicate keys are omitted, matching lookup
// behavior. On error (with MissingError), returns nil and the first
// error.
func (e *Expander) ExpandStore(store *confkit.Store) (map[string]string, error) {
	entries := store.Entries()
	if entries == nil {
		return nil, nil
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, ok := result[entry.Key]; ok {
			continue
		}
		expanded, err := e.Expand(store, entry.ValueText())
		if err != nil {
			return nil, err
		}
		result[entry.Key] = expanded
	}
	return result, nil
}

// UndefinedKeyError is returned when MissingError is set and one or
// more referenced keys are not found.
type UndefinedKeyError struct {
	// Names is the list of undefined key names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedKeyError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined key: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined keys: %s", strings.Join(e.Names, ", "))
}

// defaultExpander is the package-level expander with default settings.
var defaultExpander = NewExpander()

// Expand substitutes key references in s using the default expander.
//
// Uses MissingKeep behavior (missing references stay as-is).
func Expand(store *confkit.Store, s string) string {
	// Default expander never returns errors (MissingKeep).
	result, _ := defaultExpander.Expand(store, s)
	return result
}

// ExpandStore renders all visible keys using the default expander.
//
// Uses MissingKeep behavior (missing references stay as-is).
func ExpandStore(store *confkit.Store) map[string]string {
	// Default expander never returns errors (MissingKeep).
	result, _ := defaultExpander.ExpandStore(store)
	return result
}
