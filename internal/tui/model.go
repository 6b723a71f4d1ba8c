package tui

import (
	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/service"
	"github.com/Veraticus/housefly/internal/tui/components"
	"github.com/Veraticus/housefly/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the root of the dashboard. It owns the selected neighborhood
// and the detail panel opened for it; the map view owns the map data.
type Model struct {
	scoring  service.ScoringService
	initCmd  tea.Cmd
	selected *model.Neighborhood
	panel    *components.DetailPanelModel
	theme    themes.Theme
	help     help.Model
	keymap   KeyMap
	mapView  components.MapViewModel
	config   Config
	width    int
	height   int
	quitting bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		scoring: cfg.Scoring,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		width:   cfg.Width,
		height:  cfg.Height,
		mapView: components.NewMapView(cfg.Scoring, cfg.Theme),
	}
	m.mapView.SetTimeout(cfg.Timeout)
	m.mapView.SetSize(m.width, m.bodyHeight())
	m.initCmd = m.mapView.Load()
	return m
}

// Init starts the neighborhood and score loads.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) || key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.panel != nil {
			return m.updatePanel(msg)
		}
		return m.updateMap(msg)

	case tea.MouseMsg:
		if m.panel == nil {
			return m.updateMap(msg)
		}
		// The panel covers the map; only a click outside it reaches the
		// map surface, and that dismisses the panel.
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.insidePanel(msg.X, msg.Y) {
			return m.closePanel(), nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.mapView.SetSize(m.width, m.bodyHeight())
		return m.resizePanel(), nil

	case components.NeighborhoodSelectedMsg:
		return m.openPanel(msg.Neighborhood)

	case components.PanelClosedMsg:
		return m.closePanel(), nil

	case components.HorizonSelectedMsg:
		if m.panel == nil || msg.Panel != m.panel.ID() {
			return m, nil
		}
		common.LogDebug("horizon selected", common.Fields{
			"neighborhood_id": m.panel.Neighborhood().ID,
			"years":           msg.Horizon.Years(),
		})
		return m.updatePanel(msg)

	case components.BreakdownLoadedMsg, components.ProjectionLoadedMsg:
		if m.panel == nil {
			return m, nil
		}
		return m.updatePanel(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		next, cmd := m.updateMap(msg)
		m = next.(Model)
		cmds = append(cmds, cmd)
		if m.panel != nil {
			next, cmd = m.updatePanel(msg)
			m = next.(Model)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m.updateMap(msg)
}

// Selected returns the neighborhood whose panel is open.
func (m Model) Selected() (model.Neighborhood, bool) {
	if m.selected == nil {
		return model.Neighborhood{}, false
	}
	return *m.selected, true
}

// Panel returns the open detail panel, or nil.
func (m Model) Panel() *components.DetailPanelModel {
	return m.panel
}

// MapView returns the map view.
func (m Model) MapView() components.MapViewModel {
	return m.mapView
}

func (m Model) bodyHeight() int {
	return max(0, m.height-helpHeight)
}
