//go:build !nogui

package gui

import (
	"storebrowse/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// DirectoryPicker asks the user for a directory. done is called exactly once,
// with ok false when the user cancels.
type DirectoryPicker interface {
	Pick(parent fyne.Window, start string, done func(path string, ok bool))
}

// FolderDialog is the DirectoryPicker backed by Fyne's folder-open dialog.
type FolderDialog struct{}

// Pick shows the folder dialog, opened at start when it is a listable directory.
func (FolderDialog) Pick(parent fyne.Window, start string, done func(path string, ok bool)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			log.Warnf("Folder dialog failed: %v", err)
			done("", false)
			return
		}
		if uri == nil {
			done("", false)
			return
		}
		done(uri.Path(), true)
	}, parent)

	if start != "" {
		if location, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			d.SetLocation(location)
		} else {
			log.LogWithFields(log.F("directory", start), log.F("error", err)).Debug("Folder dialog opens at default location")
		}
	}
	d.Show()
}
