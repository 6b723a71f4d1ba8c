package model

import (
	"errors"
	"fmt"
)

// ErrInvalidHorizon is returned for a horizon outside {1, 3, 5}.
var ErrInvalidHorizon = errors.New("invalid horizon")

// Horizon is a projection timeframe in years.
type Horizon int

// Supported horizons.
const (
	HorizonOneYear   Horizon = 1
	HorizonThreeYear Horizon = 3
	HorizonFiveYear  Horizon = 5
)

// DefaultHorizon is the horizon a freshly opened detail panel starts with.
const DefaultHorizon = HorizonOneYear

// Horizons lists the supported horizons in display order.
var Horizons = []Horizon{HorizonOneYear, HorizonThreeYear, HorizonFiveYear}

// ParseHorizon converts a year count into a Horizon.
func ParseHorizon(years int) (Horizon, error) {
	switch Horizon(years) {
	case HorizonOneYear, HorizonThreeYear, HorizonFiveYear:
		return Horizon(years), nil
	default:
		return 0, fmt.Errorf("%w: %d years", ErrInvalidHorizon, years)
	}
}

// Years returns the horizon as a year count.
func (h Horizon) Years() int {
	return int(h)
}

// Label returns the human readable name, e.g. "3 Years".
func (h Horizon) Label() string {
	if h == HorizonOneYear {
		return "1 Year"
	}
	return fmt.Sprintf("%d Years", int(h))
}

// Trend is the qualitative direction of a projection.
type Trend string

// Known trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ScoreProjection holds the current score and the 1/3/5 year projections.
// The service always returns all three horizons.
type ScoreProjection struct {
	NeighborhoodName string  `json:"neighborhood_name"`
	Trend            Trend   `json:"trend"`
	NeighborhoodID   int     `json:"neighborhood_id"`
	CurrentScore     float64 `json:"current_score"`
	Projection1Yr    float64 `json:"projection_1yr"`
	Projection3Yr    float64 `json:"projection_3yr"`
	Projection5Yr    float64 `json:"projection_5yr"`
}

// Validate checks the projection refers to a neighborhood.
func (p *ScoreProjection) Validate() error {
	if p.NeighborhoodID <= 0 {
		return fmt.Errorf("projection has no neighborhood_id")
	}
	return nil
}

// For returns the projected score for the given horizon.
func (p *ScoreProjection) For(h Horizon) (float64, bool) {
	switch h {
	case HorizonOneYear:
		return p.Projection1Yr, true
	case HorizonThreeYear:
		return p.Projection3Yr, true
	case HorizonFiveYear:
		return p.Projection5Yr, true
	default:
		return 0, false
	}
}

// RefreshStatus is the result of an admin refresh.
type RefreshStatus struct {
	Timestamp Timestamp `json:"timestamp"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
}
