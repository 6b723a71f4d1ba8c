// Package geo turns neighborhoods and scores into styled map features.
package geo

// Tier is one bucket of the profitability color scale.
type Tier int

// Tiers from best to worst.
const (
	TierDeepGreen Tier = iota
	TierLightGreen
	TierYellow
	TierOrange
	TierRed
)

// tierSteps is the ordered step function over [0,100]. Lower bounds are
// inclusive; the first matching step wins.
var tierSteps = []struct {
	min   float64
	tier  Tier
	color string
	label string
}{
	{min: 80, tier: TierDeepGreen, color: "#00C853", label: "80+"},
	{min: 60, tier: TierLightGreen, color: "#64DD17", label: "60-79"},
	{min: 40, tier: TierYellow, color: "#FFD600", label: "40-59"},
	{min: 20, tier: TierOrange, color: "#FF6D00", label: "20-39"},
}

const (
	redColor = "#D32F2F"
	redLabel = "0-19"
)

// TierFor buckets a profitability score. Scores below 20, including
// negatives and NaN, fall into the red tier.
func TierFor(score float64) Tier {
	for _, step := range tierSteps {
		if score >= step.min {
			return step.tier
		}
	}
	return TierRed
}

// ColorFor returns the fill color for a profitability score.
func ColorFor(score float64) string {
	return TierFor(score).Color()
}

// Color returns the tier's hex color.
func (t Tier) Color() string {
	for _, step := range tierSteps {
		if step.tier == t {
			return step.color
		}
	}
	return redColor
}

// Label returns the score range the tier covers.
func (t Tier) Label() string {
	for _, step := range tierSteps {
		if step.tier == t {
			return step.label
		}
	}
	return redLabel
}

// Tiers lists every tier in legend order.
func Tiers() []Tier {
	return []Tier{TierDeepGreen, TierLightGreen, TierYellow, TierOrange, TierRed}
}

// Style colors.
const (
	BorderColor      = "#FFFFFF"
	HoverBorderColor = "#666666"
)

// FeatureStyle is the visual style of one neighborhood polygon.
type FeatureStyle struct {
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	DashArray   string  `json:"dashArray"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// BaseStyle is the score-derived style of a feature at rest.
func BaseStyle(score float64) FeatureStyle {
	return FeatureStyle{
		FillColor:   ColorFor(score),
		Color:       BorderColor,
		DashArray:   "3",
		Weight:      2,
		Opacity:     1,
		FillOpacity: 0.5,
	}
}

// HoverStyle overrides the border of a hovered feature. The fill color is
// still the score color.
func HoverStyle(score float64) FeatureStyle {
	s := BaseStyle(score)
	s.Weight = 3
	s.Color = HoverBorderColor
	s.DashArray = ""
	s.FillOpacity = 0.7
	return s
}
