package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/snapshot"
)

// newSnapshotCmd creates the snapshot command group.
func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and compare captures of a config file",
		Long: `Record point-in-time captures of a config file in a local
database, list them, and compare any two by ID.`,
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "confkit.db", "Snapshot database file")

	cmd.AddCommand(newSnapshotSaveCmd(opts, &dbPath))
	cmd.AddCommand(newSnapshotListCmd(&dbPath))
	cmd.AddCommand(newSnapshotDiffCmd(&dbPath))
	cmd.AddCommand(newSnapshotDeleteCmd(&dbPath))

	return cmd
}

// newSnapshotSaveCmd creates the snapshot save command.
func newSnapshotSaveCmd(opts *rootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save <file>",
		Short: "Capture a config file into the snapshot database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.NewSQLiteStore(*dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			store, err := confkit.Load(args[0], opts.loadOptions()...)
			if err != nil {
				return err
			}
			defer store.Close()

			snap := snapshot.Capture(store)
			if err := st.Save(snap); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), snap.ID)
			return nil
		},
	}
}

// newSnapshotListCmd creates the snapshot list command.
func newSnapshotListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the snapshots recorded for a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.NewSQLiteStore(*dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.List(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEQ\tID\tTAKEN\tENTRIES\tSIZE")
			for _, info := range infos {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
					info.Sequence, info.ID, info.TakenAt.Format(time.RFC3339), info.EntryCount, info.Size)
			}
			return w.Flush()
		},
	}
}

// newSnapshotDiffCmd creates the snapshot diff command.
func newSnapshotDiffCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <id-a> <id-b>",
		Short: "Compare two recorded snapshots",
		Long: `Compare two snapshots by ID, in the same format as the
top-level diff command.

Exits 0 when the snapshots match and 1 when they differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.NewSQLiteStore(*dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			before, err := st.Load(args[0])
			if err != nil {
				return err
			}
			after, err := st.Load(args[1])
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
}

// newSnapshotDeleteCmd creates the snapshot delete command.
func newSnapshotDeleteCmd(dbPath *string) *cobra.Command {
	var byPath bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snapshot by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.NewSQLiteStore(*dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if byPath {
				return st.DeletePath(args[0])
			}
			return st.Delete(args[0])
		},
	}

	cmd.Flags().BoolVar(&byPath, "path", false, "Treat the argument as a config path and delete all its snapshots")

	return cmd
}
