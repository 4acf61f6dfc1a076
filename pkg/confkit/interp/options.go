package interp

// MissingAction specifies how to handle references to missing keys.
type MissingAction int

const (
	// MissingKeep keeps the placeholder as-is when the key is not found.
	// This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the placeholder with an empty string when
	// the key is not found.
	MissingEmpty

	// MissingError returns an error when a key is not found.
	MissingError
)

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets how missing keys are handled.
//
// Default: MissingKeep (keep placeholder as-is)
//
// Example:
//
//	exp := interp.NewExpander(interp.WithMissingAction(interp.MissingError))
//	_, err := exp.Expand(store, "${missing}")
//	// err: "undefined key: missing"
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missingAction = action
	}
}

// WithBraceStyle enables or disables ${key} pattern expansion.
//
// Default: true (enabled)
func WithBraceStyle(enabled bool) Option {
	return func(e *Expander) {
		e.braceStyle = enabled
	}
}

// WithDollarStyle enables or disables $key pattern expansion.
//
// Default: true (enabled)
func WithDollarStyle(enabled bool) Option {
	return func(e *Expander) {
		e.dollarStyle = enabled
	}
}
