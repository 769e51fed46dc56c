package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"storebrowse/internal/browser"
	"storebrowse/internal/config"
	"storebrowse/internal/log"
	"storebrowse/internal/tui/common"
	"storebrowse/internal/tui/messages"
	"storebrowse/internal/tui/views"
	"storebrowse/internal/watch"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// chrome is the number of rows used by everything except the listing.
	chrome      = 9
	sidePadding = 6
)

type Model struct {
	state   *browser.State
	watcher *watch.Watcher
	keys    keyMap
	mode    common.Mode

	filter   textinput.Model
	prompt   textinput.Model
	viewport viewport.Model

	visible []string
	lastErr error
}

// New returns a model over state. w may be nil; when set it must already be
// started and the model keeps it pointed at the current root.
func New(state *browser.State, w *watch.Watcher) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "> "
	filter.SetValue(state.Filter())
	filter.Focus()

	prompt := textinput.New()
	prompt.Prompt = "Path: "

	m := &Model{
		state:    state,
		watcher:  w,
		keys:     defaultKeyMap(),
		mode:     common.Normal,
		filter:   filter,
		prompt:   prompt,
		viewport: viewport.New(80, 20),
	}
	m.followRoot()
	return m
}

// Run starts the terminal front-end and blocks until the user quits.
func Run(cfg *config.Config, state *browser.State) error {
	var w *watch.Watcher
	if cfg.Watch {
		var err error
		if w, err = watch.New(); err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}

	_, err := tea.NewProgram(New(state, w), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	reload := func() tea.Msg { return browser.ReloadRequested{} }
	return tea.Batch(textinput.Blink, reload, m.waitForChange())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.mode == common.Prompt {
			return m.handlePromptKeys(msg)
		}
		return m.handleNormalKeys(msg)
	case browser.Event:
		m.handle(msg)
		return m, nil
	case messages.ChangeMsg:
		log.LogWithFields(log.F("path", msg.Change.Path), log.F("op", msg.Change.Op.String())).Debug("Directory changed")
		m.state.MarkStale()
		m.refresh(false, nil)
		return m, m.waitForChange()
	case messages.WatchClosedMsg:
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == common.Prompt {
		m.prompt, cmd = m.prompt.Update(msg)
	} else {
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.handle(browser.ReloadRequested{})
		return m, nil
	case key.Matches(msg, m.keys.Browse):
		m.handle(browser.BrowseRequested{})
		m.mode = common.Prompt
		m.prompt.SetValue(m.state.Root())
		m.prompt.CursorEnd()
		m.filter.Blur()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if text := m.filter.Value(); text != m.state.Filter() {
		m.handle(browser.FilterChanged{Text: text})
	}
	return m, cmd
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.handle(browser.DialogCancelled{})
		return m, m.closePrompt()
	case key.Matches(msg, m.keys.Confirm):
		path := strings.TrimSpace(m.prompt.Value())
		if path != "" {
			path = config.ExpandUser(path)
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		m.handle(browser.DirectorySelected{Path: path})
		m.followRoot()
		return m, m.closePrompt()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() tea.Cmd {
	m.mode = common.Normal
	m.prompt.Blur()
	m.prompt.SetValue("")
	return m.filter.Focus()
}

// handle dispatches ev and redraws. Errors end up in the status line and
// leave the previous listing on screen.
func (m *Model) handle(ev browser.Event) {
	err := m.state.Dispatch(ev)
	if err != nil {
		log.LogWithError(err).Warn(fmt.Sprintf("%T failed", ev))
	}
	m.refresh(true, err)
}

// refresh re-derives the live view. Without a dispatch the status error is
// only replaced when the derive fails.
func (m *Model) refresh(dispatched bool, dispatchErr error) {
	items, err := m.state.Visible()
	if err == nil {
		m.visible = items
		m.viewport.SetContent(strings.Join(items, "\n"))
	}
	switch {
	case dispatchErr != nil:
		m.lastErr = dispatchErr
	case err != nil:
		m.lastErr = err
	case dispatched:
		m.lastErr = nil
	}
}

func (m *Model) resize(width, height int) {
	m.viewport.Width = max(width-sidePadding, 1)
	m.viewport.Height = max(height-chrome, 1)
	m.filter.Width = max(width-sidePadding-len(m.filter.Prompt), 1)
	m.prompt.Width = max(width-sidePadding-len(m.prompt.Prompt), 1)
}

func (m *Model) followRoot() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(m.state.Root()); err != nil {
		log.Warnf("Cannot watch root directory %s: %v", m.state.Root(), err)
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.ChangeMsg{Change: change}
	}
}

// Mode returns whether typing goes to the filter or the path prompt.
func (m *Model) Mode() common.Mode { return m.mode }

// Root returns the directory being browsed.
func (m *Model) Root() string { return m.state.Root() }

// FilterView renders the filter input.
func (m *Model) FilterView() string { return m.filter.View() }

// PromptView renders the path prompt.
func (m *Model) PromptView() string { return m.prompt.View() }

// ListView renders the visible part of the listing.
func (m *Model) ListView() string {
	if len(m.visible) == 0 {
		return "(no entries)"
	}
	return m.viewport.View()
}

// Status describes the live view against the last reload, or the last error.
func (m *Model) Status() string {
	if m.lastErr != nil {
		return "Error: " + m.lastErr.Error()
	}
	text := fmt.Sprintf("%d shown, %d at last reload", len(m.visible), len(m.state.Snapshot()))
	if m.state.Stale() {
		text += " (stale)"
	}
	return text
}

// Err returns the error from the last operation, if any.
func (m *Model) Err() error { return m.lastErr }

// Visible returns the entries currently listed.
func (m *Model) Visible() []string {
	return append([]string(nil), m.visible...)
}
