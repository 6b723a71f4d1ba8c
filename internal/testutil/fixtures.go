package testutil

import (
	"github.com/Veraticus/housefly/internal/model"
)

// Builder assembles a FakeScoring with a fluent API.
//
//	fake := testutil.NewBuilder().
//		WithNeighborhood(1, "Allentown", 85).
//		WithProjection(1, 85, 87, 90, 94, model.TrendUp).
//		Build()
type Builder struct {
	fake *FakeScoring
}

// NewBuilder starts an empty fake.
func NewBuilder() *Builder {
	return &Builder{fake: NewFakeScoring()}
}

// WithNeighborhood adds a neighborhood with a current score and a matching
// breakdown. Sub-scores are score/100.
func (b *Builder) WithNeighborhood(id int, name string, score float64) *Builder {
	b.WithUnscoredNeighborhood(id, name)
	sub := score / 100
	b.fake.Scores = append(b.fake.Scores, model.Score{
		ID:                  id,
		NeighborhoodID:      id,
		CrimeScore:          sub,
		InfrastructureScore: sub,
		DemographicScore:    sub,
		SentimentScore:      sub,
		ProfitabilityScore:  score,
	})
	b.fake.Breakdowns[id] = &model.ScoreBreakdown{
		NeighborhoodID:      id,
		NeighborhoodName:    name,
		CrimeScore:          sub,
		InfrastructureScore: sub,
		DemographicScore:    sub,
		SentimentScore:      sub,
		ProfitabilityScore:  score,
	}
	return b
}

// WithUnscoredNeighborhood adds a neighborhood with no score at all.
func (b *Builder) WithUnscoredNeighborhood(id int, name string) *Builder {
	b.fake.Neighborhoods = append(b.fake.Neighborhoods, model.Neighborhood{ID: id, Name: name})
	return b
}

// WithBreakdown replaces the breakdown of a neighborhood.
func (b *Builder) WithBreakdown(breakdown model.ScoreBreakdown) *Builder {
	b.fake.Breakdowns[breakdown.NeighborhoodID] = &breakdown
	return b
}

// WithProjection sets the projection of a neighborhood.
func (b *Builder) WithProjection(id int, current, oneYr, threeYr, fiveYr float64, trend model.Trend) *Builder {
	b.fake.Projections[id] = &model.ScoreProjection{
		NeighborhoodID: id,
		CurrentScore:   current,
		Projection1Yr:  oneYr,
		Projection3Yr:  threeYr,
		Projection5Yr:  fiveYr,
		Trend:          trend,
	}
	return b
}

// WithError fails every call of op.
func (b *Builder) WithError(op string, err error) *Builder {
	b.fake.SetErr(op, err)
	return b
}

// Build returns the fake.
func (b *Builder) Build() *FakeScoring {
	return b.fake
}

// Buffalo is a small fixture of real neighborhood names across all tiers.
func Buffalo() *Builder {
	return NewBuilder().
		WithNeighborhood(1, "Allentown", 85).
		WithNeighborhood(2, "Elmwood Village", 72).
		WithNeighborhood(3, "Black Rock", 45).
		WithNeighborhood(4, "Kensington", 25).
		WithUnscoredNeighborhood(5, "Central Park").
		WithProjection(1, 85, 87, 90, 94, model.TrendUp).
		WithProjection(2, 72, 71, 70, 68, model.TrendDown).
		WithProjection(3, 45, 45, 46, 46, model.TrendStable)
}
