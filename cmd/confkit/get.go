package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/interp"
)

// newGetCmd creates the get command.
func newGetCmd(opts *rootOptions) *cobra.Command {
	var (
		typ       string
		defText   string
		expandRef bool
	)

	cmd := &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Print one value from a config file",
		Long: `Print the value of a key.

Without --type, the first matching entry's value is printed as text,
whatever its kind. With --type, the typed accessor is used instead: it
returns the value only when the entry's kind matches (int also accepts
int64 entries, truncated to 32 bits; float32 also accepts float64
entries, narrowed), and the default otherwise.

Examples:
  confkit get app.conf port
  confkit get app.conf port --type int --default 8080
  confkit get app.conf url --expand`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := confkit.Load(args[0], opts.loadOptions()...)
			if err != nil {
				return err
			}
			defer store.Close()

			key := args[1]
			hasDefault := cmd.Flags().Changed("default")

			out, err := renderValue(store, key, typ, defText, hasDefault)
			if err != nil {
				return err
			}
			if expandRef {
				out = interp.Expand(store, out)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Typed read: int, int64, float32, float64, string, or char")
	cmd.Flags().StringVar(&defText, "default", "", "Fallback when the key is missing or its kind does not match")
	cmd.Flags().BoolVar(&expandRef, "expand", false, "Expand ${key} references in the printed value")

	return cmd
}

// renderValue resolves key to its printable text, honoring the
// requested type and default.
func renderValue(store *confkit.Store, key, typ, defText string, hasDefault bool) (string, error) {
	if typ == "" {
		entry, ok := store.Lookup(key)
		if !ok {
			if hasDefault {
				return defText, nil
			}
			return "", fmt.Errorf("key %q not found", key)
		}
		return entry.ValueText(), nil
	}

	switch typ {
	case "int":
		d := 0
		if hasDefault {
			v, err := strconv.Atoi(defText)
			if err != nil {
				return "", fmt.Errorf("parse --default as int: %w", err)
			}
			d = v
		}
		return strconv.Itoa(store.Int(key, d)), nil

	case "int64":
		var d int64
		if hasDefault {
			v, err := strconv.ParseInt(defText, 10, 64)
			if err != nil {
				return "", fmt.Errorf("parse --default as int64: %w", err)
			}
			d = v
		}
		return strconv.FormatInt(store.Int64(key, d), 10), nil

	case "float32":
		var d float32
		if hasDefault {
			v, err := strconv.ParseFloat(defText, 32)
			if err != nil {
				return "", fmt.Errorf("parse --default as float32: %w", err)
			}
			d = float32(v)
		}
		return strconv.FormatFloat(float64(store.Float32(key, d)), 'g', -1, 32), nil

	case "float64":
		var d float64
		if hasDefault {
			v, err := strconv.ParseFloat(defText, 64)
			if err != nil {
				return "", fmt.Errorf("parse --default as float64: %w", err)
			}
			d = v
		}
		return strconv.FormatFloat(store.Float64(key, d), 'g', -1, 64), nil

	case "string":
		return store.String(key, defText), nil

	case "char":
		var d byte
		if hasDefault {
			if len(defText) != 1 {
				return "", fmt.Errorf("--default for char must be a single byte, got %q", defText)
			}
			d = defText[0]
		}
		return string(store.Char(key, d)), nil

	default:
		return "", fmt.Errorf("unknown type %q (want int, int64, float32, float64, string, or char)", typ)
	}
}
