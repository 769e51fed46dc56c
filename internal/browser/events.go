package browser

// Event is a UI action delivered to State.Dispatch. The set is closed: only
// the types in this file implement it.
type Event interface {
	event()
}

// BrowseRequested is sent when the user asks to pick a new directory.
type BrowseRequested struct{}

// DirectorySelected carries the directory chosen in the picker.
type DirectorySelected struct {
	Path string
}

// DialogCancelled is sent when the picker closes without a choice.
type DialogCancelled struct{}

// FilterChanged carries the new filter text.
type FilterChanged struct {
	Text string
}

// ReloadRequested asks for the snapshot to be re-materialized.
type ReloadRequested struct{}

func (BrowseRequested) event()   {}
func (DirectorySelected) event() {}
func (DialogCancelled) event()   {}
func (FilterChanged) event()     {}
func (ReloadRequested) event()   {}
