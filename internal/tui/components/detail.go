package components

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/service"
	"github.com/Veraticus/housefly/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PanelState is the lifecycle state of the detail panel.
type PanelState int

// Panel states. A failed fetch still ends in PanelReady.
const (
	PanelLoading PanelState = iota
	PanelReady
)

func (s PanelState) String() string {
	if s == PanelLoading {
		return "loading"
	}
	return "ready"
}

const defaultFetchTimeout = 30 * time.Second

// DetailPanelModel shows the breakdown and projection for one neighborhood.
// Each fetch is tagged with a token; a completion whose token is no longer
// the latest issued for its kind is dropped.
type DetailPanelModel struct {
	scoring         service.ScoringService
	breakdownErr    error
	projectionErr   error
	breakdown       *model.ScoreBreakdown
	projection      *model.ScoreProjection
	theme           themes.Theme
	chart           BreakdownChartModel
	neighborhood    model.Neighborhood
	spinner         spinner.Model
	timeout         time.Duration
	id              uint64
	horizonSeq      uint64
	breakdownToken  uint64
	projectionToken uint64
	horizon         model.Horizon
	width           int
	height          int
	breakdownBusy   bool
	projectionBusy  bool
}

// NewDetailPanel creates a panel for a neighborhood. Call Start to issue
// the initial fetches.
func NewDetailPanel(scoring service.ScoringService, n model.Neighborhood, theme themes.Theme) DetailPanelModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	id := nextRequestToken()
	return DetailPanelModel{
		id:           id,
		horizonSeq:   id,
		scoring:      scoring,
		neighborhood: n,
		theme:        theme,
		spinner:      s,
		horizon:      model.DefaultHorizon,
		timeout:      defaultFetchTimeout,
		chart:        NewBreakdownChart(nil, theme),
	}
}

// SetTimeout bounds each fetch.
func (m *DetailPanelModel) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// Start fetches the breakdown and the projection for the current horizon
// concurrently.
func (m *DetailPanelModel) Start() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchBreakdown(),
		m.fetchProjection(),
	)
}

// Update handles messages.
func (m DetailPanelModel) Update(msg tea.Msg) (DetailPanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case BreakdownLoadedMsg:
		if msg.Token != m.breakdownToken || msg.NeighborhoodID != m.neighborhood.ID {
			return m, nil
		}
		m.breakdownBusy = false
		m.breakdownErr = msg.Err
		if msg.Err != nil {
			common.LogError(msg.Err, "breakdown fetch failed", common.Fields{
				"neighborhood_id": msg.NeighborhoodID,
			})
			return m, nil
		}
		m.breakdown = msg.Breakdown
		m.chart = NewBreakdownChart(msg.Breakdown, m.theme)
		m.resizeChart()
		return m, nil

	case ProjectionLoadedMsg:
		if msg.Token != m.projectionToken || msg.NeighborhoodID != m.neighborhood.ID || msg.Horizon != m.horizon {
			return m, nil
		}
		m.projectionBusy = false
		m.projectionErr = msg.Err
		if msg.Err != nil {
			common.LogError(msg.Err, "projection fetch failed", common.Fields{
				"neighborhood_id": msg.NeighborhoodID,
				"years":           msg.Horizon.Years(),
			})
			return m, nil
		}
		m.projection = msg.Projection
		return m, nil

	case HorizonSelectedMsg:
		if msg.Panel != m.id || msg.Seq <= m.horizonSeq {
			return m, nil
		}
		m.horizonSeq = msg.Seq
		cmd := m.setHorizon(msg.Horizon)
		return m, cmd

	case spinner.TickMsg:
		if m.State() != PanelLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DetailPanelModel) handleKey(msg tea.KeyMsg) (DetailPanelModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "x":
		return m, func() tea.Msg { return PanelClosedMsg{} }
	case "r":
		cmd := m.retry()
		return m, cmd
	}

	if h, ok := HorizonForKey(msg, m.horizon); ok {
		// Applied here so a second key press steps from the new horizon.
		sel := SelectHorizon(m.id, h)
		m.horizonSeq = nextRequestToken()
		cmd := m.setHorizon(h)
		return m, tea.Batch(cmd, sel)
	}
	return m, nil
}

// setHorizon switches the active horizon and re-fetches only the projection.
func (m *DetailPanelModel) setHorizon(h model.Horizon) tea.Cmd {
	if h == m.horizon {
		return nil
	}
	if _, err := model.ParseHorizon(h.Years()); err != nil {
		return nil
	}
	wasLoading := m.State() == PanelLoading
	m.horizon = h
	m.projection = nil
	m.projectionErr = nil
	cmd := m.fetchProjection()
	if wasLoading {
		return cmd
	}
	return tea.Batch(m.spinner.Tick, cmd)
}

// retry re-issues whichever fetches failed. With nothing failed it is a no-op.
func (m *DetailPanelModel) retry() tea.Cmd {
	wasLoading := m.State() == PanelLoading
	var cmds []tea.Cmd
	if m.breakdownErr != nil && !m.breakdownBusy {
		m.breakdownErr = nil
		cmds = append(cmds, m.fetchBreakdown())
	}
	if m.projectionErr != nil && !m.projectionBusy {
		m.projectionErr = nil
		cmds = append(cmds, m.fetchProjection())
	}
	if len(cmds) == 0 {
		return nil
	}
	if !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *DetailPanelModel) fetchBreakdown() tea.Cmd {
	m.breakdownToken = nextRequestToken()
	m.breakdownBusy = true

	token := m.breakdownToken
	id := m.neighborhood.ID
	scoring := m.scoring
	timeout := m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		b, err := scoring.GetBreakdown(ctx, id)
		return BreakdownLoadedMsg{
			Breakdown:      b,
			Err:            err,
			Token:          token,
			NeighborhoodID: id,
		}
	}
}

func (m *DetailPanelModel) fetchProjection() tea.Cmd {
	m.projectionToken = nextRequestToken()
	m.projectionBusy = true

	token := m.projectionToken
	id := m.neighborhood.ID
	horizon := m.horizon
	scoring := m.scoring
	timeout := m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := scoring.GetProjection(ctx, id, horizon)
		return ProjectionLoadedMsg{
			Projection:     p,
			Err:            err,
			Token:          token,
			NeighborhoodID: id,
			Horizon:        horizon,
		}
	}
}

func (m *DetailPanelModel) resizeChart() {
	if m.width > 0 {
		m.chart.SetWidth(min(m.width/2, 40))
	}
}

// State reports whether any fetch for the current neighborhood and horizon
// is still outstanding.
func (m DetailPanelModel) State() PanelState {
	if m.breakdownBusy || m.projectionBusy {
		return PanelLoading
	}
	return PanelReady
}

// ID identifies this panel instance. A reopened panel gets a new ID.
func (m DetailPanelModel) ID() uint64 {
	return m.id
}

// Neighborhood returns the neighborhood the panel shows.
func (m DetailPanelModel) Neighborhood() model.Neighborhood {
	return m.neighborhood
}

// Horizon returns the active horizon.
func (m DetailPanelModel) Horizon() model.Horizon {
	return m.horizon
}

// Breakdown returns the loaded breakdown, or nil.
func (m DetailPanelModel) Breakdown() *model.ScoreBreakdown {
	return m.breakdown
}

// Projection returns the loaded projection, or nil.
func (m DetailPanelModel) Projection() *model.ScoreProjection {
	return m.projection
}

// CurrentScore prefers the projection's current score, then the breakdown's
// profitability score, then 0.
func (m DetailPanelModel) CurrentScore() float64 {
	switch {
	case m.projection != nil:
		return m.projection.CurrentScore
	case m.breakdown != nil:
		return m.breakdown.ProfitabilityScore
	default:
		return 0
	}
}

// ProjectedScore returns the projection for the active horizon.
func (m DetailPanelModel) ProjectedScore() (float64, bool) {
	if m.projection == nil {
		return 0, false
	}
	return m.projection.For(m.horizon)
}

// TrendGlyph maps a trend to its arrow. Unknown trends render nothing.
func TrendGlyph(t model.Trend) string {
	switch t {
	case model.TrendUp:
		return "↑"
	case model.TrendDown:
		return "↓"
	case model.TrendStable:
		return "→"
	default:
		return ""
	}
}

// View renders the panel contents. The caller draws the frame.
func (m DetailPanelModel) View() string {
	sections := []string{
		m.theme.Title.Render(m.neighborhood.Name),
		m.renderScores(),
		RenderHorizonSelector(m.horizon, m.theme),
	}

	if m.breakdown != nil {
		sections = append(sections, m.chart.View())
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DetailPanelModel) renderScores() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted)

	current := label.Render("Current Score: ") +
		m.theme.Bold.Render(fmt.Sprintf("%.1f", m.CurrentScore()))

	projected := label.Render(m.horizon.Label() + " Projection: ")
	if v, ok := m.ProjectedScore(); ok {
		projected += m.theme.Bold.Render(fmt.Sprintf("%.1f", v))
		if glyph := TrendGlyph(m.projection.Trend); glyph != "" {
			projected += " " + m.trendStyle(m.projection.Trend).Render(glyph)
		}
	} else if m.projectionBusy {
		projected += m.spinner.View()
	} else {
		projected += label.Render("-")
	}

	return lipgloss.JoinVertical(lipgloss.Left, current, projected)
}

func (m DetailPanelModel) trendStyle(t model.Trend) lipgloss.Style {
	switch t {
	case model.TrendUp:
		return lipgloss.NewStyle().Foreground(m.theme.Success)
	case model.TrendDown:
		return lipgloss.NewStyle().Foreground(m.theme.Error)
	default:
		return lipgloss.NewStyle().Foreground(m.theme.Muted)
	}
}

// renderStatus shows a muted note for failed fetches. Only transient
// failures suggest a retry.
func (m DetailPanelModel) renderStatus() string {
	if m.State() == PanelLoading {
		return m.spinner.View() + m.theme.StatusPending.Render(" Loading...")
	}

	err := m.breakdownErr
	if err == nil {
		err = m.projectionErr
	}
	if err == nil {
		return ""
	}

	switch {
	case common.IsPermanent(err):
		return m.theme.StatusPending.Render("Score data unavailable for this neighborhood.")
	case common.IsRetryable(err):
		return m.theme.StatusPending.Render("Could not load score data (r to retry).")
	default:
		return m.theme.StatusPending.Render("Score data could not be read.")
	}
}

func (m DetailPanelModel) renderFooter() string {
	updated := "N/A"
	if m.breakdown != nil {
		updated = m.breakdown.CalculatedAt.DisplayDate()
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Render("Last updated: " + updated)
}
