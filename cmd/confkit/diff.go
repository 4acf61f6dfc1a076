package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/snapshot"
)

// newDiffCmd creates the diff command.
func newDiffCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file-a> <file-b>",
		Short: "Compare two config files key by key",
		Long: `Compare two config files and list the keys that differ.

Keys only in the second file print as "+ key", keys only in the first
as "- key", and keys whose kind or value changed as "~ key". For
duplicate keys only the first occurrence is compared, matching what
lookups resolve to.

Exits 0 when the files match and 1 when they differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := loadSnapshot(args[0], opts)
			if err != nil {
				return err
			}
			after, err := loadSnapshot(args[1], opts)
			if err != nil {
				return err
			}

			d := snapshot.Compare(before, after)
			printDiff(cmd.OutOrStdout(), d)
			if !d.Empty() {
				return errDiffFound
			}
			return nil
		},
	}

	return cmd
}

// loadSnapshot parses a config file and captures it for comparison.
func loadSnapshot(path string, opts *rootOptions) (*snapshot.Snapshot, error) {
	store, err := confkit.Load(path, opts.loadOptions()...)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return snapshot.Capture(store), nil
}

// printDiff writes one line per differing key.
func printDiff(w io.Writer, d snapshot.Diff) {
	for _, key := range d.Added {
		fmt.Fprintf(w, "+ %s\n", key)
	}
	for _, key := range d.Removed {
		fmt.Fprintf(w, "- %s\n", key)
	}
	for _, key := range d.Changed {
		fmt.Fprintf(w, "~ %s\n", key)
	}
}
