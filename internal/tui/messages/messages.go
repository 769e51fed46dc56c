package messages

import "storebrowse/internal/watch"

// ChangeMsg reports that the watched root gained, lost or renamed an entry.
type ChangeMsg struct {
	Change watch.Change
}

// WatchClosedMsg is sent once the watcher's change stream ends.
type WatchClosedMsg struct{}
