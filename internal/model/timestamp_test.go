package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "naive with microseconds",
			input: `"2024-03-15T10:30:00.123456"`,
			want:  time.Date(2024, 3, 15, 10, 30, 0, 123456000, time.UTC),
		},
		{
			name:  "naive without fraction",
			input: `"2024-03-15T10:30:00"`,
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 utc",
			input: `"2024-03-15T10:30:00Z"`,
			want:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: `"2024-03-15"`,
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `12`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_KeepsOffset(t *testing.T) {
	ts, err := ParseTimestamp("2024-12-31T23:30:00-05:00")
	require.NoError(t, err)

	// No zone conversion: the calendar date stays the one the service sent.
	assert.Equal(t, "12/31/2024", ts.DisplayDate())
}

func TestTimestamp_DisplayDate(t *testing.T) {
	assert.Equal(t, "N/A", Timestamp{}.DisplayDate())
	ts := Timestamp{Time: time.Date(2025, 1, 7, 8, 0, 0, 0, time.UTC)}
	assert.Equal(t, "1/7/2025", ts.DisplayDate())
}

func TestNeighborhood_DecodeEmbeddedScoreAndGeometry(t *testing.T) {
	body := `{
		"id": 1,
		"name": "Allentown",
		"created_at": "2024-01-01T00:00:00",
		"geometry": {"type": "Polygon", "coordinates": []},
		"scores": {"id": 5, "neighborhood_id": 1, "profitability_score": 85, "calculated_at": "2024-02-01T00:00:00"}
	}`

	var n Neighborhood
	require.NoError(t, json.Unmarshal([]byte(body), &n))
	require.NoError(t, n.Validate())
	require.NotNil(t, n.Geometry)
	assert.Equal(t, "Polygon", n.Geometry.Type)
	require.NotNil(t, n.Scores)
	assert.InDelta(t, 85.0, n.Scores.ProfitabilityScore, 0.0001)
}
