package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/geo"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/service"
	"github.com/Veraticus/housefly/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// Screen layout of the map view. The list occupies the left columns and
// the canvas everything to the right of the gutter.
const (
	mapHeaderHeight = 3
	mapLegendHeight = 1
	listWidth       = 32
	listGutter      = 1
	noHover         = -1
)

// MapViewModel renders the choropleth and dispatches hover and click.
type MapViewModel struct {
	scoring  service.ScoringService
	loadErr  error
	theme    themes.Theme
	viewport geo.Viewport
	features geo.FeatureCollection
	raster   geo.Raster
	spinner  spinner.Model
	timeout  time.Duration
	token    uint64
	cursor   int
	offset   int
	hovered  int
	width    int
	height   int
	loading  bool
}

// NewMapView creates a map view. Call Load to fetch data.
func NewMapView(scoring service.ScoringService, theme themes.Theme) MapViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return MapViewModel{
		scoring: scoring,
		theme:   theme,
		spinner: s,
		timeout: defaultFetchTimeout,
		hovered: noHover,
		loading: true,
	}
}

// SetTimeout bounds the startup load.
func (m *MapViewModel) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// Load fetches neighborhoods and scores in parallel. Whatever half succeeds
// is delivered even if the other fails.
func (m *MapViewModel) Load() tea.Cmd {
	m.token = nextRequestToken()
	m.loading = true

	token := m.token
	scoring := m.scoring
	timeout := m.timeout

	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			g             errgroup.Group
			neighborhoods []model.Neighborhood
			scores        []model.Score
		)
		g.Go(func() error {
			var err error
			neighborhoods, err = scoring.ListNeighborhoods(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			scores, err = scoring.ListScores(ctx)
			return err
		})
		err := g.Wait()

		return MapDataLoadedMsg{
			Neighborhoods: neighborhoods,
			Scores:        scores,
			Err:           err,
			Token:         token,
		}
	}

	return tea.Batch(m.spinner.Tick, load)
}

// Update handles messages.
func (m MapViewModel) Update(msg tea.Msg) (MapViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case MapDataLoadedMsg:
		if msg.Token != m.token {
			return m, nil
		}
		m.applyData(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *MapViewModel) applyData(msg MapDataLoadedMsg) {
	m.loading = false
	m.loadErr = msg.Err
	if msg.Err != nil {
		common.LogError(msg.Err, "map data load incomplete", common.Fields{
			"neighborhoods": len(msg.Neighborhoods),
			"scores":        len(msg.Scores),
		})
	}

	m.features = geo.BuildFeatureCollection(msg.Neighborhoods, msg.Scores)
	m.viewport = geo.InitialViewport(m.features)
	m.hovered = noHover
	m.cursor = max(0, min(m.cursor, m.features.Len()-1))
	m.rasterize()
	m.scrollToCursor()

	common.LogInfo("map data loaded", common.Fields{
		"neighborhoods": m.features.Len(),
		"drawable":      m.features.Drawable(),
	})
}

func (m MapViewModel) handleKey(msg tea.KeyMsg) (MapViewModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		cmd := m.Load()
		return m, cmd
	}

	if m.loading || m.features.Len() == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "enter":
		return m, m.selectIndex(m.cursor)
	}
	return m, nil
}

func (m *MapViewModel) moveCursor(delta int) {
	m.cursor = max(0, min(m.features.Len()-1, m.cursor+delta))
	m.hovered = m.cursor
	m.scrollToCursor()
}

func (m MapViewModel) handleMouse(msg tea.MouseMsg) (MapViewModel, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	idx := m.HitTest(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.hovered = idx
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if idx == noHover {
			return m, nil
		}
		m.cursor = idx
		return m, m.selectIndex(idx)
	}
	return m, nil
}

func (m MapViewModel) selectIndex(idx int) tea.Cmd {
	if idx < 0 || idx >= m.features.Len() {
		return nil
	}
	n := m.features.Features[idx].Neighborhood
	return func() tea.Msg {
		return NeighborhoodSelectedMsg{Neighborhood: n}
	}
}

// HitTest returns the feature index under a screen cell, or -1.
func (m MapViewModel) HitTest(x, y int) int {
	row := y - mapHeaderHeight
	if row < 0 || row >= m.bodyHeight() {
		return noHover
	}

	if x < listWidth {
		idx := m.offset + row
		if idx >= m.features.Len() {
			return noHover
		}
		return idx
	}

	col := x - listWidth - listGutter
	if col < 0 {
		return noHover
	}
	return m.raster.At(col, row)
}

// SetSize lays the view out for a terminal of the given size.
func (m *MapViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.rasterize()
	m.scrollToCursor()
}

func (m MapViewModel) bodyHeight() int {
	return max(0, m.height-mapHeaderHeight-mapLegendHeight)
}

func (m MapViewModel) canvasWidth() int {
	return max(0, m.width-listWidth-listGutter)
}

func (m *MapViewModel) rasterize() {
	m.raster = geo.Rasterize(m.features, m.viewport.Bounds, m.canvasWidth(), m.bodyHeight())
}

func (m *MapViewModel) scrollToCursor() {
	rows := m.bodyHeight()
	if rows == 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// FeatureStyle returns the style a neighborhood is drawn with right now.
// It is derived from the current score on every call.
func (m MapViewModel) FeatureStyle(id int) (geo.FeatureStyle, bool) {
	f, ok := m.features.Lookup(id)
	if !ok {
		return geo.FeatureStyle{}, false
	}
	if hid, hovering := m.Hovered(); hovering && hid == id {
		return geo.HoverStyle(f.Score), true
	}
	return geo.BaseStyle(f.Score), true
}

// Loading reports whether the startup load is outstanding.
func (m MapViewModel) Loading() bool {
	return m.loading
}

// LoadErr returns the error of the last load, if any.
func (m MapViewModel) LoadErr() error {
	return m.loadErr
}

// Features returns the loaded feature collection.
func (m MapViewModel) Features() geo.FeatureCollection {
	return m.features
}

// Viewport returns the current camera.
func (m MapViewModel) Viewport() geo.Viewport {
	return m.viewport
}

// Hovered returns the hovered neighborhood id.
func (m MapViewModel) Hovered() (int, bool) {
	if m.hovered == noHover || m.hovered >= m.features.Len() {
		return 0, false
	}
	return m.features.Features[m.hovered].ID(), true
}

// View renders the map view.
func (m MapViewModel) View() string {
	header := m.renderHeader()
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.spinner.View()+" Loading neighborhoods...",
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(),
		strings.Repeat(" ", listGutter),
		m.renderCanvas(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderLegend())
}

func (m MapViewModel) renderHeader() string {
	title := m.theme.Title.Render("Buffalo Neighborhood Profitability")
	sub := m.theme.Subtitle.Render("Hover to highlight, click or enter for details")
	return lipgloss.JoinVertical(lipgloss.Left, title, sub, "")
}

func (m MapViewModel) renderList() string {
	rows := m.bodyHeight()
	lines := make([]string, 0, rows)
	nameWidth := listWidth - 10

	for i := m.offset; i < m.features.Len() && len(lines) < rows; i++ {
		f := &m.features.Features[i]
		style, _ := m.FeatureStyle(f.ID())
		hovered := i == m.hovered

		swatchGlyph, borderGlyph := "██", "│"
		if hovered {
			swatchGlyph, borderGlyph = "▓▓", "┃"
		}
		border := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Color)).Render(borderGlyph)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(style.FillColor)).Render(swatchGlyph)

		score := "n/a"
		if f.Scored {
			score = fmt.Sprintf("%3.0f", f.Score)
		}

		name := truncate(f.Neighborhood.Name, nameWidth)
		nameStyle := m.theme.Normal
		if i == m.cursor {
			nameStyle = m.theme.Bold
		}

		line := border + swatch + " " +
			nameStyle.Width(nameWidth).Render(name) + " " +
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(score)
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No neighborhoods"))
	}

	return lipgloss.NewStyle().Width(listWidth).Height(rows).Render(strings.Join(lines, "\n"))
}

func (m MapViewModel) renderCanvas() string {
	if m.features.Drawable() == 0 || m.raster.Width == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Width(m.canvasWidth()).
			Render("No neighborhood boundaries to draw")
	}

	lines := make([]string, m.raster.Height)
	for row := 0; row < m.raster.Height; row++ {
		var b strings.Builder
		col := 0
		for col < m.raster.Width {
			idx := m.raster.At(col, row)
			run := col
			for run < m.raster.Width && m.raster.At(run, row) == idx {
				run++
			}
			b.WriteString(m.renderCells(idx, run-col))
			col = run
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// renderCells draws n adjacent cells of one feature.
func (m MapViewModel) renderCells(idx, n int) string {
	if idx == geo.NoFeature {
		return strings.Repeat(" ", n)
	}
	f := &m.features.Features[idx]
	style, _ := m.FeatureStyle(f.ID())

	glyph := "▒"
	if idx == m.hovered {
		glyph = "▓"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.FillColor)).
		Render(strings.Repeat(glyph, n))
}

func (m MapViewModel) renderLegend() string {
	parts := make([]string, 0, len(geo.Tiers()))
	for _, t := range geo.Tiers() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color())).Render("██")
		parts = append(parts, swatch+" "+t.Label())
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return string(r[:min(len(r), max(width, 0))])
	}
	return string(r[:width-1]) + "…"
}
