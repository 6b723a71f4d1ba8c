package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/housefly/internal/geo"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// PrintNeighborhoods writes one row per neighborhood. A neighborhood's
// embedded score wins over the snapshot; with neither it is listed as
// unscored.
func PrintNeighborhoods(w io.Writer, neighborhoods []model.Neighborhood, snapshot map[int]model.Score) error {
	if len(neighborhoods) == 0 {
		_, err := fmt.Fprintln(w, InfoStyle.Render("No neighborhoods found."))
		return err
	}

	nameWidth := len("Name")
	for _, n := range neighborhoods {
		nameWidth = max(nameWidth, lipgloss.Width(n.Name))
	}

	header := fmt.Sprintf("%-4s  %-*s  %6s  %-6s  %s",
		"ID", nameWidth, "Name", "Score", "Tier", "Updated")
	if _, err := fmt.Fprintln(w, TableHeaderStyle.Render(header)); err != nil {
		return err
	}

	for _, n := range neighborhoods {
		score, ok := scoreFor(n, snapshot)
		scoreText, tier, updated := "n/a", "-", "N/A"
		if ok {
			scoreText = ScoreStyle(geo.ColorFor(score.ProfitabilityScore)).
				Render(fmt.Sprintf("%6.1f", score.ProfitabilityScore))
			tier = geo.TierFor(score.ProfitabilityScore).Label()
			updated = score.CalculatedAt.DisplayDate()
		} else {
			scoreText = SubtleStyle.Render(fmt.Sprintf("%6s", scoreText))
		}

		name := n.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(n.Name))
		if _, err := fmt.Fprintf(w, "%-4d  %s  %s  %-6s  %s\n", n.ID, name, scoreText, tier, updated); err != nil {
			return err
		}
	}
	return nil
}

func scoreFor(n model.Neighborhood, snapshot map[int]model.Score) (model.Score, bool) {
	if n.Scores != nil {
		return *n.Scores, true
	}
	s, ok := snapshot[n.ID]
	return s, ok
}

// PrintNeighborhoodDetail writes the current score, breakdown and projection
// of one neighborhood. Any of them may be nil when its fetch failed.
func PrintNeighborhoodDetail(w io.Writer, n model.Neighborhood, score *model.Score, breakdown *model.ScoreBreakdown, projection *model.ScoreProjection) error {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(n.Name))
	b.WriteString("\n")

	current := 0.0
	switch {
	case projection != nil:
		current = projection.CurrentScore
	case breakdown != nil:
		current = breakdown.ProfitabilityScore
	case score != nil:
		current = score.ProfitabilityScore
	}
	fmt.Fprintf(&b, "Current Score: %s (%s)\n",
		ScoreStyle(geo.ColorFor(current)).Render(fmt.Sprintf("%.1f", current)),
		geo.TierFor(current).Label())

	if breakdown != nil {
		b.WriteString("\nScore Breakdown\n")
		rows := []struct {
			name  string
			value float64
		}{
			{"Crime", breakdown.CrimeScore},
			{"Infrastructure", breakdown.InfrastructureScore},
			{"Demographics", breakdown.DemographicScore},
			{"Sentiment", breakdown.SentimentScore},
		}
		for _, r := range rows {
			fmt.Fprintf(&b, "  %-15s %5.1f\n", r.name, r.value*100)
		}
	}

	if projection != nil {
		b.WriteString("\nProjection")
		if projection.Trend != "" {
			fmt.Fprintf(&b, " (%s)", projection.Trend)
		}
		b.WriteString("\n")
		for _, h := range model.Horizons {
			v, _ := projection.For(h)
			fmt.Fprintf(&b, "  %-8s %5.1f\n", h.Label(), v)
		}
	}

	updated := "N/A"
	switch {
	case breakdown != nil:
		updated = breakdown.CalculatedAt.DisplayDate()
	case score != nil:
		updated = score.CalculatedAt.DisplayDate()
	}
	b.WriteString("\n" + SubtleStyle.Render("Last updated: "+updated) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
