package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/interp"
)

// dumpEntry is the export shape for one parsed entry.
type dumpEntry struct {
	Key   string `json:"key" yaml:"key"`
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

// newDumpCmd creates the dump command.
func newDumpCmd(opts *rootOptions) *cobra.Command {
	var (
		format    string
		expandRef bool
	)

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every entry of a config file",
		Long: `Print all entries in file order, duplicates included.

The text format re-emits key=value lines. The json and yaml formats
carry the inferred kind and the typed value for each entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := confkit.Load(args[0], opts.loadOptions()...)
			if err != nil {
				return err
			}
			defer store.Close()

			switch format {
			case "text":
				for _, e := range store.Entries() {
					text := e.ValueText()
					if expandRef {
						text = interp.Expand(store, text)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", e.Key, text)
				}
				return nil

			case "json":
				data, err := json.MarshalIndent(dumpEntries(store, expandRef), "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil

			case "yaml":
				data, err := yaml.Marshal(dumpEntries(store, expandRef))
				if err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil

			default:
				return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, or yaml")
	cmd.Flags().BoolVar(&expandRef, "expand", false, "Expand ${key} references in string values")

	return cmd
}

// dumpEntries converts the store's entries into their export shape.
// Only string values can hold references, so expansion leaves the
// numeric kinds untouched.
func dumpEntries(store *confkit.Store, expand bool) []dumpEntry {
	entries := store.Entries()
	out := make([]dumpEntry, 0, len(entries))
	for _, e := range entries {
		v := e.Value()
		if expand {
			if s, ok := v.(string); ok {
				v = interp.Expand(store, s)
			}
		}
		out = append(out, dumpEntry{Key: e.Key, Kind: e.Kind.String(), Value: v})
	}
	return out
}
