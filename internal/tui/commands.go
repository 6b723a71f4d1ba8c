package tui

import (
	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// openPanel mounts a fresh panel for n. Any previous panel is discarded
// together with its in-flight fetches.
func (m Model) openPanel(n model.Neighborhood) (tea.Model, tea.Cmd) {
	common.LogDebug("opening neighborhood", common.Fields{
		"neighborhood_id": n.ID,
		"name":            n.Name,
	})

	panel := components.NewDetailPanel(m.scoring, n, m.theme)
	panel.SetTimeout(m.config.Timeout)
	cmd := panel.Start()

	m.selected = &n
	m.panel = &panel
	return m.resizePanel(), cmd
}

// closePanel unmounts the panel and clears the selection.
func (m Model) closePanel() Model {
	m.selected = nil
	m.panel = nil
	return m
}

func (m Model) resizePanel() Model {
	if m.panel == nil {
		return m
	}
	p, _ := m.panel.Update(tea.WindowSizeMsg{
		Width:  m.panelContentWidth(),
		Height: m.bodyHeight(),
	})
	m.panel = &p
	return m
}

func (m Model) updatePanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	p, cmd := m.panel.Update(msg)
	m.panel = &p
	return m, cmd
}

func (m Model) updateMap(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.mapView, cmd = m.mapView.Update(msg)
	return m, cmd
}
