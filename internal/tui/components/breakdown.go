package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// BreakdownCategory is one bar of the breakdown chart.
type BreakdownCategory struct {
	Name  string
	Color string
	Value float64
}

const defaultBarWidth = 30

// BreakdownCategories converts the normalized sub-scores of a breakdown into
// the four chart categories, scaled to 0..100. Values are not clamped.
func BreakdownCategories(b *model.ScoreBreakdown) []BreakdownCategory {
	if b == nil {
		return nil
	}
	return []BreakdownCategory{
		{Name: "Crime", Color: "#f44336", Value: b.CrimeScore * 100},
		{Name: "Infrastructure", Color: "#2196f3", Value: b.InfrastructureScore * 100},
		{Name: "Demographics", Color: "#4caf50", Value: b.DemographicScore * 100},
		{Name: "Sentiment", Color: "#ff9800", Value: b.SentimentScore * 100},
	}
}

// BreakdownChartModel renders the four sub-scores as horizontal bars with
// a legend underneath.
type BreakdownChartModel struct {
	theme      themes.Theme
	categories []BreakdownCategory
	bars       []progress.Model
	width      int
}

// NewBreakdownChart builds a chart for a breakdown.
func NewBreakdownChart(b *model.ScoreBreakdown, theme themes.Theme) BreakdownChartModel {
	cats := BreakdownCategories(b)
	bars := make([]progress.Model, len(cats))
	for i, c := range cats {
		bars[i] = progress.New(
			progress.WithSolidFill(c.Color),
			progress.WithoutPercentage(),
			progress.WithWidth(defaultBarWidth),
		)
	}
	return BreakdownChartModel{
		theme:      theme,
		categories: cats,
		bars:       bars,
		width:      defaultBarWidth,
	}
}

// SetWidth resizes the bars.
func (m *BreakdownChartModel) SetWidth(width int) {
	m.width = max(width, 10)
	for i := range m.bars {
		m.bars[i].Width = m.width
	}
}

// Categories returns the chart categories in display order.
func (m BreakdownChartModel) Categories() []BreakdownCategory {
	return m.categories
}

// View renders the chart.
func (m BreakdownChartModel) View() string {
	if len(m.categories) == 0 {
		return ""
	}

	nameWidth := 0
	for _, c := range m.categories {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
	}

	rows := make([]string, 0, len(m.categories)+2)
	rows = append(rows, m.theme.Subtitle.Render("Score Breakdown"))
	for i, c := range m.categories {
		name := m.theme.Normal.Width(nameWidth + 1).Render(c.Name)
		bar := m.bars[i].ViewAs(barPercent(c.Value))
		rows = append(rows, name+" "+bar)
	}
	rows = append(rows, m.renderLegend())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m BreakdownChartModel) renderLegend() string {
	parts := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s: %.1f", swatch, c.Name, c.Value))
	}
	return strings.Join(parts, "  ")
}

// barPercent maps a 0..100 value into the bar's fill ratio. The legend
// keeps the raw value; only the bar is clamped.
func barPercent(v float64) float64 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 1
	default:
		return v / 100
	}
}
