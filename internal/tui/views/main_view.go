package views

import (
	"strings"

	"storebrowse/internal/tui/common"
	"storebrowse/internal/tui/styles"
)

// RenderMainView lays out the key bar, location, filter or path prompt,
// listing and status line.
func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("storebrowse"))
	sb.WriteString("  " + RenderKeyCommands(m.Mode()) + "\n")
	sb.WriteString(styles.Location.Render("Location: "+m.Root()) + "\n")

	if m.Mode() == common.Prompt {
		sb.WriteString(m.PromptView() + "\n")
	} else {
		sb.WriteString(m.FilterView() + "\n")
	}

	sb.WriteString(styles.ListStyle.Render(m.ListView()) + "\n")

	if m.Err() != nil {
		sb.WriteString(styles.Error.Render(m.Status()))
	} else {
		sb.WriteString(styles.Status.Render(m.Status()))
	}

	return styles.App.Render(sb.String())
}

// RenderKeyCommands lists the keys active in mode.
func RenderKeyCommands(mode common.Mode) string {
	if mode == common.Prompt {
		return styles.Help.Render("[Enter] Select  [Esc] Cancel")
	}
	return styles.Help.Render("[Ctrl+O] Select path  [Ctrl+R] Reload  [↑/↓] Scroll  [Esc] Quit")
}
