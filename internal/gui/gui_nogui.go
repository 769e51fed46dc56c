//go:build nogui
// +build nogui

package gui

import (
	"fmt"

	"storebrowse/internal/browser"
	"storebrowse/internal/config"
)

var _ Interface = (*App)(nil)

// App is a stub for builds with the GUI disabled
type App struct{}

// NewApp returns a stub whose Run reports that the GUI is unavailable.
func NewApp(cfg *config.Config, state *browser.State) *App {
	return &App{}
}

// Run prints a notice instead of opening a window
func (a *App) Run() {
	fmt.Println("GUI is disabled in this build. Please use 'storebrowse tui' or 'storebrowse list'.")
}

// ShowError prints the error
func (a *App) ShowError(title string, err error) {
	fmt.Printf("[%s] %v\n", title, err)
}

// Available returns whether the GUI is available in this build
func Available() bool {
	return false
}
