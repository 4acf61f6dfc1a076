// confkit is a CLI for inspecting key=value configuration files: typed
// reads, dumps, diffs, live watching, and snapshot history.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/confkit/pkg/confkit"
)

// version is set at build time via -ldflags.
var version = "dev"

// errDiffFound signals a difference was printed; main exits 1 without
// repeating it as an error message.
var errDiffFound = errors.New("differences found")

// rootOptions holds global flag state shared by all commands.
type rootOptions struct {
	verbose bool
}

// loadOptions translates global flags into library load options.
func (o *rootOptions) loadOptions() []confkit.Option {
	if !o.verbose {
		return nil
	}
	return []confkit.Option{confkit.WithLogger(newSlogBridge(newLogger(true)))}
}

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errDiffFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "confkit",
		Short: "Inspect key=value configuration files",
		Long: `confkit parses key=value configuration files, inferring a kind for
every value: int, int64, float64, or string. Lines starting with '#'
are comments, malformed lines are skipped, and the first occurrence of
a duplicated key wins.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newKeysCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newDiffCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newSnapshotCmd(opts))

	return rootCmd
}
