package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/confkit/pkg/confkit/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd(opts *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Watch a config file and report every reload",
		Long: `Watch a config file and re-parse it after each change.

Rapid successive writes collapse into one reload. A reload that fails
keeps the previous parse current and is reported as a warning. Runs
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(opts.verbose)

			watchOpts := []watch.Option{
				watch.WithDebounce(debounce),
				watch.WithLoadOptions(opts.loadOptions()...),
			}
			if opts.verbose {
				watchOpts = append(watchOpts, watch.WithLogger(newSlogBridge(logger)))
			}

			w, err := watch.New(args[0], watchOpts...)
			if err != nil {
				return err
			}
			defer w.Close()

			// Subscribe first so the initial parse is delivered too.
			sub := w.Subscribe()
			if err := w.Start(ctx); err != nil {
				return err
			}

			logger.Info().Str("path", w.Path()).Msg("watching")

			for {
				select {
				case <-ctx.Done():
					return nil
				case evt, ok := <-sub.Events():
					if !ok {
						return nil
					}
					if evt.Err != nil {
						logger.Warn().Err(evt.Err).Msg("reload failed")
						continue
					}
					logger.Info().Int("entries", evt.Store.Len()).Msg("config loaded")
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period after a change before reloading")

	return cmd
}
