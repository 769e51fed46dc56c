package main

import (
	"fmt"

	"storebrowse/internal/browser"

	"github.com/spf13/cobra"
)

// NewListCmd creates the command printing the filtered listing
func NewListCmd(opts *options) *cobra.Command {
	var filter string
	var snapshot bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered listing of the root directory",
		Long: `Print the direct children of the root directory that match the filter,
one path per line, in the order the operating system returns them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := newState(opts.cfg)
			if err != nil {
				return err
			}
			if err := state.Dispatch(browser.FilterChanged{Text: filter}); err != nil {
				return err
			}

			var items []string
			if snapshot {
				if err := state.Dispatch(browser.ReloadRequested{}); err != nil {
					return err
				}
				items = state.Snapshot()
			} else if items, err = state.Visible(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, item := range items {
				fmt.Fprintln(out, item)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only list entries matching this filter")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "reload and print the materialized snapshot")

	return cmd
}
