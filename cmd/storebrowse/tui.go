package main

import (
	"io"
	"os"
	"path/filepath"

	"storebrowse/internal/log"
	"storebrowse/internal/tui"

	"github.com/spf13/cobra"
)

// NewTUICmd creates the terminal user interface command
func NewTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal user interface",
		Long: `Browse the directory from the terminal.

Keys: ctrl+o selects a new directory, ctrl+r reloads, up/down scroll,
esc or ctrl+c quit. Everything else edits the filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would tear the alternate screen apart.
			if opts.cfg.Debug {
				log.Configure(log.WithOutput(io.Discard), log.WithFile(filepath.Join(os.TempDir(), "storebrowse-tui.log")))
			} else {
				log.Configure(log.WithOutput(io.Discard))
			}
			defer log.Close()

			state, err := newState(opts.cfg)
			if err != nil {
				return err
			}
			return tui.Run(opts.cfg, state)
		},
	}
}
