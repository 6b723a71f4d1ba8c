package scoring

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const testBaseURL = "http://scores.test"

func setupHTTPMock(t *testing.T) *Client {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient(testBaseURL + "/")
}

func TestClient_ListNeighborhoods(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/neighborhoods",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"id": 1, "name": "Allentown", "created_at": "2024-01-01T00:00:00", "scores": null},
			{"id": 2, "name": "Elmwood Village", "created_at": "2024-01-01T00:00:00",
			 "scores": {"id": 9, "neighborhood_id": 2, "profitability_score": 61.5, "calculated_at": "2024-02-01T12:00:00"}},
			{"id": 0, "name": "Nowhere", "created_at": "2024-01-01T00:00:00"}
		]`))

	neighborhoods, err := client.ListNeighborhoods(context.Background())
	require.NoError(t, err)
	require.Len(t, neighborhoods, 2, "entry without id is dropped")

	assert.Equal(t, "Allentown", neighborhoods[0].Name)
	assert.Nil(t, neighborhoods[0].Scores)
	require.NotNil(t, neighborhoods[1].Scores)
	assert.InDelta(t, 61.5, neighborhoods[1].Scores.ProfitabilityScore, 0.0001)
}

func TestClient_GetNeighborhood(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/neighborhoods/7",
		httpmock.NewStringResponder(http.StatusOK, `{"id": 7, "name": "Black Rock", "created_at": "2024-01-01T00:00:00"}`))

	n, err := client.GetNeighborhood(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n.ID)
	assert.Equal(t, "Black Rock", n.Name)
	assert.Equal(t, "1/1/2024", n.CreatedAt.DisplayDate())
}

func TestClient_GetNeighborhoodScore(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/neighborhoods/3/scores",
		httpmock.NewStringResponder(http.StatusOK, `{
			"id": 11, "neighborhood_id": 3,
			"crime_score": 0.4, "infrastructure_score": 0.6, "demographic_score": 0.5, "sentiment_score": 0.7,
			"profitability_score": 55.0, "calculated_at": "2024-05-01T08:00:00.123456"
		}`))

	s, err := client.GetNeighborhoodScore(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NeighborhoodID)
	assert.InDelta(t, 0.7, s.SentimentScore, 0.0001)
}

func TestClient_ListScores(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/scores",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"id": 1, "neighborhood_id": 1, "profitability_score": 85, "calculated_at": "2024-05-01T08:00:00"},
			{"id": 2, "neighborhood_id": 99, "profitability_score": 12, "calculated_at": "2024-05-01T08:00:00"}
		]`))

	scores, err := client.ListScores(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 99, scores[1].NeighborhoodID)
}

func TestClient_GetBreakdown(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/scores/breakdown/1",
		httpmock.NewStringResponder(http.StatusOK, `{
			"neighborhood_id": 1, "neighborhood_name": "Allentown",
			"crime_score": 0.8, "infrastructure_score": 0.9, "demographic_score": 0.85, "sentiment_score": 0.85,
			"profitability_score": 85, "calculated_at": "2024-05-01T08:00:00"
		}`))

	b, err := client.GetBreakdown(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Allentown", b.NeighborhoodName)
	assert.InDelta(t, 0.9, b.InfrastructureScore, 0.0001)
}

func TestClient_GetProjection(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/api/scores/1", "years=5",
		httpmock.NewStringResponder(http.StatusOK, `{
			"neighborhood_id": 1, "neighborhood_name": "Allentown", "current_score": 86,
			"projection_1yr": 86, "projection_3yr": 86, "projection_5yr": 91.2, "trend": "up"
		}`))

	p, err := client.GetProjection(context.Background(), 1, model.HorizonFiveYear)
	require.NoError(t, err)
	assert.Equal(t, model.TrendUp, p.Trend)

	got, ok := p.For(model.HorizonFiveYear)
	require.True(t, ok)
	assert.InDelta(t, 91.2, got, 0.0001)

	_, err = client.GetProjection(context.Background(), 1, model.Horizon(2))
	require.ErrorIs(t, err, model.ErrInvalidHorizon)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "invalid horizon never reaches the network")
}

func TestClient_SendsRequestID(t *testing.T) {
	client := setupHTTPMock(t)

	var seen string
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/scores",
		func(req *http.Request) (*http.Response, error) {
			seen = req.Header.Get(RequestIDHeader)
			return httpmock.NewStringResponse(http.StatusOK, `[]`), nil
		})

	scores, err := client.ListScores(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.Len(t, seen, 36)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		responder httpmock.Responder
		check     func(t *testing.T, err error)
		name      string
	}{
		{
			name:      "not found with detail",
			responder: httpmock.NewStringResponder(http.StatusNotFound, `{"detail": "Neighborhood not found"}`),
			check: func(t *testing.T, err error) {
				var svcErr *common.ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.True(t, svcErr.NotFound())
				assert.Equal(t, "Neighborhood not found", svcErr.Message)
				assert.True(t, common.IsPermanent(err))
			},
		},
		{
			name:      "server error with text body",
			responder: httpmock.NewStringResponder(http.StatusInternalServerError, "boom\n"),
			check: func(t *testing.T, err error) {
				var svcErr *common.ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, "boom", svcErr.Message)
				assert.True(t, common.IsRetryable(err))
			},
		},
		{
			name:      "transport failure",
			responder: httpmock.NewErrorResponder(errors.New("connection refused")),
			check: func(t *testing.T, err error) {
				var netErr *common.NetworkError
				require.ErrorAs(t, err, &netErr)
				assert.Equal(t, "get breakdown", netErr.Op)
			},
		},
		{
			name:      "invalid json",
			responder: httpmock.NewStringResponder(http.StatusOK, `{invalid json`),
			check: func(t *testing.T, err error) {
				var shapeErr *common.DataShapeError
				require.ErrorAs(t, err, &shapeErr)
				assert.Equal(t, "body", shapeErr.Field)
			},
		},
		{
			name:      "wrong field type",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"neighborhood_id": "one"}`),
			check: func(t *testing.T, err error) {
				var shapeErr *common.DataShapeError
				require.ErrorAs(t, err, &shapeErr)
				assert.Equal(t, "neighborhood_id", shapeErr.Field)
			},
		},
		{
			name:      "missing neighborhood id",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"neighborhood_name": "Allentown"}`),
			check: func(t *testing.T, err error) {
				var shapeErr *common.DataShapeError
				require.ErrorAs(t, err, &shapeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupHTTPMock(t)
			httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/scores/breakdown/5", tt.responder)

			b, err := client.GetBreakdown(context.Background(), 5)
			require.Error(t, err)
			assert.Nil(t, b)
			tt.check(t, err)
		})
	}
}

func TestClient_ConcurrentStartupLoads(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/neighborhoods",
		httpmock.NewStringResponder(http.StatusOK, `[{"id": 1, "name": "Allentown", "created_at": "2024-01-01T00:00:00"}]`))
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/scores",
		httpmock.NewStringResponder(http.StatusOK, `[{"id": 1, "neighborhood_id": 1, "profitability_score": 85, "calculated_at": "2024-01-01T00:00:00"}]`))

	const rounds = 5
	neighborhoods := make([][]model.Neighborhood, rounds)
	scores := make([][]model.Score, rounds)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < rounds; i++ {
		g.Go(func() error {
			var err error
			neighborhoods[i], err = client.ListNeighborhoods(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			scores[i], err = client.ListScores(ctx)
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < rounds; i++ {
		assert.Len(t, neighborhoods[i], 1)
		assert.Len(t, scores[i], 1)
	}
	assert.Equal(t, 10, httpmock.GetTotalCallCount())
}

func TestClient_TriggerRefresh(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/api/admin/refresh",
		httpmock.NewStringResponder(http.StatusOK, `{"status": "success", "message": "Data refresh completed successfully", "timestamp": "2024-06-01T03:00:00"}`))

	status, err := client.TriggerRefresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "6/1/2024", status.Timestamp.DisplayDate())
}
