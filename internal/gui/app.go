//go:build !nogui

package gui

import (
	"fmt"
	"sync"

	"storebrowse/internal/browser"
	"storebrowse/internal/config"
	"storebrowse/internal/errors"
	"storebrowse/internal/log"
	"storebrowse/internal/watch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	state      *browser.State
	picker     DirectoryPicker
	watcher    *watch.Watcher

	selectButton *widget.Button
	reloadButton *widget.Button
	filterEntry  *widget.Entry
	list         *widget.List
	pathLabel    *widget.Label
	statusLabel  *widget.Label

	// Live view rendered by the list. Re-derived on every refresh; guarded
	// because watcher notifications refresh from their own goroutine.
	mu      sync.Mutex
	visible []string
	lastErr error
}

// Available reports whether this build carries the desktop front-end.
func Available() bool {
	return true
}

var _ Interface = (*App)(nil)

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, state *browser.State) *App {
	return newApp(app.NewWithID("io.github.storebrowse"), cfg, state, FolderDialog{})
}

func newApp(fyneApp fyne.App, cfg *config.Config, state *browser.State, picker DirectoryPicker) *App {
	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		state:   state,
		picker:  picker,
	}
	a.mainWindow = a.fyneApp.NewWindow(cfg.Window.Title)
	a.setupMainWindow()
	return a
}

// GetMainWindow returns the main window for testing purposes
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run loads the initial listing, shows the window and blocks until it closes.
func (a *App) Run() {
	a.handle(browser.ReloadRequested{})
	if a.cfg.Watch {
		a.startWatching()
	}
	defer a.stopWatching()

	a.mainWindow.ShowAndRun()
}

// setupMainWindow builds the button row, filter entry, listing and status line.
func (a *App) setupMainWindow() {
	a.selectButton = widget.NewButton("Select path", a.browse)
	a.reloadButton = widget.NewButton("Reload", func() {
		a.handle(browser.ReloadRequested{})
	})

	a.filterEntry = widget.NewEntry()
	a.filterEntry.SetPlaceHolder("filter")
	a.filterEntry.OnChanged = func(text string) {
		a.handle(browser.FilterChanged{Text: text})
	}

	a.list = widget.NewList(
		func() int {
			a.mu.Lock()
			defer a.mu.Unlock()
			return len(a.visible)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template entry")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			a.mu.Lock()
			defer a.mu.Unlock()
			if id < 0 || id >= len(a.visible) {
				return // Avoid index out of range
			}
			obj.(*widget.Label).SetText(a.visible[id])
		},
	)

	a.pathLabel = widget.NewLabel("")
	a.statusLabel = widget.NewLabel("")

	top := container.NewVBox(
		container.NewHBox(a.selectButton, a.reloadButton),
		a.pathLabel,
		a.filterEntry,
	)
	a.mainWindow.SetContent(container.NewBorder(top, a.statusLabel, nil, nil, a.list))
	a.mainWindow.Resize(fyne.NewSize(a.cfg.Window.Width, a.cfg.Window.Height))

	a.mainWindow.Canvas().SetOnTypedKey(func(ke *fyne.KeyEvent) {
		switch ke.Name {
		case fyne.KeyF5:
			a.handle(browser.ReloadRequested{})
		case fyne.KeyEscape:
			a.fyneApp.Quit()
		}
	})
}

// handle dispatches ev and redraws. Errors are shown in the status line and
// leave the previous listing on screen.
func (a *App) handle(ev browser.Event) {
	err := a.state.Dispatch(ev)
	if err != nil {
		log.LogWithError(err).Warn(fmt.Sprintf("%T failed", ev))
	}
	a.refresh(true, err)
}

// changed marks the listing stale after the watched root changed on disk.
func (a *App) changed(change watch.Change) {
	log.LogWithFields(log.F("path", change.Path), log.F("op", change.Op.String())).Debug("Directory changed")
	a.state.MarkStale()
	a.refresh(false, nil)
}

// refresh re-derives the live view and redraws the list and labels. After a
// dispatch the status shows dispatchErr or the derive error, or clears. A
// refresh without a dispatch only replaces the status when the derive fails.
func (a *App) refresh(dispatched bool, dispatchErr error) {
	items, err := a.state.Visible()

	a.mu.Lock()
	if err == nil {
		a.visible = items
	}
	switch {
	case dispatchErr != nil:
		a.lastErr = dispatchErr
	case err != nil:
		a.lastErr = err
	case dispatched:
		a.lastErr = nil
	}
	a.mu.Unlock()

	a.pathLabel.SetText("Location: " + a.state.Root())
	a.statusLabel.SetText(a.statusText())
	a.list.Refresh()
}

func (a *App) statusText() string {
	a.mu.Lock()
	shown, lastErr := len(a.visible), a.lastErr
	a.mu.Unlock()

	if lastErr != nil {
		return "Error: " + lastErr.Error()
	}
	text := fmt.Sprintf("%d shown, %d at last reload", shown, len(a.state.Snapshot()))
	if a.state.Stale() {
		text += " (stale)"
	}
	return text
}

// browse opens the directory picker and applies its answer.
func (a *App) browse() {
	a.handle(browser.BrowseRequested{})
	a.picker.Pick(a.mainWindow, a.state.Root(), func(path string, ok bool) {
		if !ok {
			a.handle(browser.DialogCancelled{})
			return
		}
		a.handle(browser.DirectorySelected{Path: path})
		a.followRoot()
	})
}

func (a *App) startWatching() {
	w, err := watch.New()
	if err != nil {
		a.ShowError("Watch disabled", err)
		return
	}
	if err := w.Start(); err != nil {
		a.ShowError("Watch disabled", err)
		return
	}
	a.watcher = w
	a.followRoot()

	go func() {
		for change := range w.Changes() {
			a.changed(change)
		}
	}()
}

// followRoot points the watcher at the current root, if watching.
func (a *App) followRoot() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Watch(a.state.Root()); err != nil {
		log.Warnf("Cannot watch root directory %s: %v", a.state.Root(), err)
	}
}

func (a *App) stopWatching() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
}

// ShowError logs err and shows it in a dialog.
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.Errorf("%s: %v", title, err)
	dialog.ShowError(errors.Wrap(err, title), a.mainWindow)
}
