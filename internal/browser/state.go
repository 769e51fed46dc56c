package browser

import (
	"sync"

	"storebrowse/internal/errors"
	"storebrowse/internal/log"
)

// Phase is the picker state of the browser.
type Phase int

const (
	// Idle means no directory picker is open.
	Idle Phase = iota
	// AwaitingDialogResult means a picker was requested and has not answered.
	AwaitingDialogResult
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case AwaitingDialogResult:
		return "awaiting_dialog_result"
	default:
		return "unknown"
	}
}

// State owns the root path, the filter text and the materialized snapshot.
//
// Two views of the listing exist. Visible re-reads the directory on every
// call and always reflects the current root and filter. Snapshot returns
// what the last ReloadRequested materialized and does not follow root or
// filter changes until the next reload; Stale reports whether the two may
// differ.
type State struct {
	mu       sync.Mutex
	root     string
	filter   string
	opts     Options
	phase    Phase
	snapshot []string
	stale    bool
}

// NewState returns a browser rooted at root with an empty filter and an empty
// snapshot. Nothing is read until Visible or a reload.
func NewState(root string, opts Options) *State {
	return &State{
		root:  root,
		opts:  opts,
		phase: Idle,
		stale: true,
	}
}

// Root returns the directory being browsed.
func (s *State) Root() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Filter returns the current filter text.
func (s *State) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Options returns the filter options.
func (s *State) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Phase returns the picker state.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Visible derives the listing from the current root and filter.
func (s *State) Visible() ([]string, error) {
	s.mu.Lock()
	root, filter, opts := s.root, s.filter, s.opts
	s.mu.Unlock()
	return Derive(root, filter, opts)
}

// Snapshot returns a copy of the listing materialized by the last reload.
func (s *State) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Stale reports whether root, filter or the directory itself changed since
// the last successful reload.
func (s *State) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// MarkStale flags the snapshot as out of date. Safe to call from any goroutine.
func (s *State) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// Dispatch applies ev to the state. Only ReloadRequested and a malformed
// DirectorySelected can fail; on failure the root and snapshot are unchanged.
func (s *State) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case BrowseRequested:
		s.setPhase(AwaitingDialogResult)
		return nil
	case DirectorySelected:
		return s.selectDirectory(e.Path)
	case DialogCancelled:
		s.setPhase(Idle)
		return nil
	case FilterChanged:
		s.mu.Lock()
		if s.filter != e.Text {
			s.filter = e.Text
			s.stale = true
		}
		s.mu.Unlock()
		return nil
	case ReloadRequested:
		return s.reload()
	default:
		return errors.Newf("unhandled browser event %T", ev)
	}
}

func (s *State) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *State) selectDirectory(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Idle
	if path == "" {
		return errors.NewInvalidInputError("empty directory selection", nil)
	}
	if path != s.root {
		log.LogWithFields(log.F("from", s.root), log.F("to", path)).Info("Root directory changed")
		s.root = path
		s.stale = true
	}
	return nil
}

func (s *State) reload() error {
	s.mu.Lock()
	root, filter, opts := s.root, s.filter, s.opts
	s.mu.Unlock()

	items, err := Derive(root, filter, opts)
	if err != nil {
		log.LogWithError(err).Warn("Reload failed, keeping previous snapshot")
		return err
	}

	s.mu.Lock()
	s.snapshot = items
	s.stale = false
	s.mu.Unlock()
	log.LogWithFields(log.F("root", root), log.F("filter", filter), log.F("items", len(items))).Debug("Snapshot reloaded")
	return nil
}
