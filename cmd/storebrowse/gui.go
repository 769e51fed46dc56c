package main

import (
	"storebrowse/internal/config"
	"storebrowse/internal/errors"
	"storebrowse/internal/gui"

	"github.com/spf13/cobra"
)

// NewGUICmd creates the GUI command for the CLI
func NewGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical user interface",
		Long:  `Open the storebrowse window: a filter entry, the directory listing and buttons to pick a new directory or reload.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts.cfg)
		},
	}
}

func runGUI(cfg *config.Config) error {
	if !gui.Available() {
		return errors.New("GUI is disabled in this build, use 'storebrowse tui' or 'storebrowse list'")
	}
	state, err := newState(cfg)
	if err != nil {
		return err
	}
	gui.NewApp(cfg, state).Run()
	return nil
}
