package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/confkit/pkg/confkit"
)

// newKeysCmd creates the keys command.
func newKeysCmd(opts *rootOptions) *cobra.Command {
	var showKinds bool

	cmd := &cobra.Command{
		Use:   "keys <file>",
		Short: "List the keys defined in a config file",
		Long: `List every distinct key in file order.

Duplicate keys are listed once, at the position of their first
occurrence, matching what lookups resolve to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := confkit.Load(args[0], opts.loadOptions()...)
			if err != nil {
				return err
			}
			defer store.Close()

			seen := make(map[string]bool)

			if !showKinds {
				for _, e := range store.Entries() {
					if seen[e.Key] {
						continue
					}
					seen[e.Key] = true
					fmt.Fprintln(cmd.OutOrStdout(), e.Key)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range store.Entries() {
				if seen[e.Key] {
					continue
				}
				seen[e.Key] = true
				fmt.Fprintf(w, "%s\t%s\n", e.Key, e.Kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&showKinds, "kinds", false, "Show the inferred kind next to each key")

	return cmd
}
