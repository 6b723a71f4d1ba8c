package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ service.ScoringService = (*FakeScoring)(nil)
	_ service.Refresher      = (*FakeScoring)(nil)
)

func TestFakeScoring_Buffalo(t *testing.T) {
	fake := Buffalo().Build()
	ctx := context.Background()

	neighborhoods, err := fake.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Len(t, neighborhoods, 5)

	scores, err := fake.ListScores(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 4)

	b, err := fake.GetBreakdown(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Allentown", b.NeighborhoodName)
	assert.InDelta(t, 0.85, b.CrimeScore, 1e-9)

	p, err := fake.GetProjection(ctx, 1, model.HorizonFiveYear)
	require.NoError(t, err)
	assert.InDelta(t, 94.0, p.Projection5Yr, 1e-9)

	assert.Equal(t, 1, fake.CallCount(OpGetProjection))
	assert.Equal(t, model.HorizonFiveYear, fake.Calls()[3].Horizon)
}

func TestFakeScoring_NotFound(t *testing.T) {
	fake := NewBuilder().WithUnscoredNeighborhood(9, "Nowhere").Build()

	_, err := fake.GetBreakdown(context.Background(), 9)
	var svcErr *common.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.True(t, svcErr.NotFound())
	assert.True(t, common.IsPermanent(err))
}

func TestFakeScoring_SetErr(t *testing.T) {
	boom := errors.New("boom")
	fake := Buffalo().WithError(OpListScores, boom).Build()

	_, err := fake.ListScores(context.Background())
	assert.ErrorIs(t, err, boom)

	fake.SetErr(OpListScores, nil)
	_, err = fake.ListScores(context.Background())
	assert.NoError(t, err)
}
