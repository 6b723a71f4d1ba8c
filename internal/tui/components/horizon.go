package components

import (
	"strings"

	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RenderHorizonSelector draws the three horizon choices with the active one
// marked. It holds no state; the caller owns the active horizon.
func RenderHorizonSelector(active model.Horizon, theme themes.Theme) string {
	label := theme.Subtitle.Render("Projection Timeframe:")

	buttons := make([]string, 0, len(model.Horizons))
	for _, h := range model.Horizons {
		text := " " + h.Label() + " "
		if h == active {
			buttons = append(buttons, theme.Selected.Render(text))
			continue
		}
		buttons = append(buttons, lipgloss.NewStyle().
			Foreground(theme.Muted).
			Render(text))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		label,
		strings.Join(buttons, " "),
	)
}

// HorizonForKey maps a key press to the horizon it chooses. Digits pick a
// horizon directly; left/right step without wrapping. It reports false when
// the key does not change the horizon.
func HorizonForKey(msg tea.KeyMsg, active model.Horizon) (model.Horizon, bool) {
	var next model.Horizon
	switch msg.String() {
	case "1":
		next = model.HorizonOneYear
	case "3":
		next = model.HorizonThreeYear
	case "5":
		next = model.HorizonFiveYear
	case "left", "h":
		next = stepHorizon(active, -1)
	case "right", "l":
		next = stepHorizon(active, 1)
	default:
		return active, false
	}
	return next, next != active
}

// SelectHorizon emits the chosen horizon for a panel.
func SelectHorizon(panel uint64, h model.Horizon) tea.Cmd {
	msg := HorizonSelectedMsg{Panel: panel, Seq: nextRequestToken(), Horizon: h}
	return func() tea.Msg {
		return msg
	}
}

func stepHorizon(active model.Horizon, delta int) model.Horizon {
	idx := 0
	for i, h := range model.Horizons {
		if h == active {
			idx = i
		}
	}
	idx = max(0, min(len(model.Horizons)-1, idx+delta))
	return model.Horizons[idx]
}
