package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	helpHeight    = 1
	panelMaxWidth = 64
	// panelChrome is the border plus horizontal padding of the panel box.
	panelChrome = 6
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.mapView.View()
	if m.panel != nil {
		body = lipgloss.Place(
			m.width, m.bodyHeight(),
			lipgloss.Center, lipgloss.Center,
			m.panelBox(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelp())
}

func (m Model) renderHelp() string {
	bindings := m.keymap.MapHelp()
	if m.panel != nil {
		bindings = m.keymap.PanelHelp()
	}
	return m.help.ShortHelpView(bindings)
}

func (m Model) panelWidth() int {
	return max(20, min(m.width-4, panelMaxWidth))
}

func (m Model) panelContentWidth() int {
	return m.panelWidth() - panelChrome
}

func (m Model) panelBox() string {
	return m.theme.RoundedBox.
		Width(m.panelWidth() - 2).
		Render(m.panel.View())
}

// panelRect returns the screen rectangle of the centered panel.
func (m Model) panelRect() (x, y, w, h int) {
	box := m.panelBox()
	w = lipgloss.Width(box)
	h = lipgloss.Height(box)
	x = max(0, (m.width-w)/2)
	y = max(0, (m.bodyHeight()-h)/2)
	return x, y, w, h
}

func (m Model) insidePanel(px, py int) bool {
	if m.panel == nil {
		return false
	}
	x, y, w, h := m.panelRect()
	return px >= x && px < x+w && py >= y && py < y+h
}
