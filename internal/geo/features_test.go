package geo

import (
	"encoding/json"
	"testing"

	"github.com/Veraticus/housefly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/encoding/geojson"
)

func geometry(t *testing.T, raw string) *geojson.Geometry {
	t.Helper()
	var g geojson.Geometry
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	return &g
}

// square is a small polygon in the middle of the fallback bounds.
const square = `{"type": "Polygon", "coordinates": [[[-78.9, 42.85], [-78.8, 42.85], [-78.8, 42.9], [-78.9, 42.9], [-78.9, 42.85]]]}`

func TestBuildFeatureCollection_JoinsScores(t *testing.T) {
	neighborhoods := []model.Neighborhood{{ID: 1, Name: "Allentown"}}
	scores := []model.Score{{ID: 10, NeighborhoodID: 1, ProfitabilityScore: 85}}

	fc := BuildFeatureCollection(neighborhoods, scores)

	require.Equal(t, 1, fc.Len())
	f, ok := fc.Lookup(1)
	require.True(t, ok)
	assert.True(t, f.Scored)
	assert.InDelta(t, 85.0, f.Score, 0.0001)
	assert.Equal(t, TierDeepGreen, TierFor(f.Score))
	assert.Equal(t, "#00C853", BaseStyle(f.Score).FillColor)
}

func TestBuildFeatureCollection_MissingScoreDefaultsToZero(t *testing.T) {
	neighborhoods := []model.Neighborhood{{ID: 1, Name: "Allentown"}, {ID: 2, Name: "Kaisertown"}}
	scores := []model.Score{{NeighborhoodID: 1, ProfitabilityScore: 50}}

	fc := BuildFeatureCollection(neighborhoods, scores)

	f, ok := fc.Lookup(2)
	require.True(t, ok)
	assert.False(t, f.Scored)
	assert.Zero(t, f.Score)
	assert.Equal(t, ColorFor(0), BaseStyle(f.Score).FillColor)
}

func TestBuildFeatureCollection_UnknownScoreIgnored(t *testing.T) {
	neighborhoods := []model.Neighborhood{{ID: 1, Name: "Allentown"}}
	scores := []model.Score{
		{NeighborhoodID: 1, ProfitabilityScore: 30},
		{NeighborhoodID: 42, ProfitabilityScore: 99},
	}

	var fc FeatureCollection
	require.NotPanics(t, func() {
		fc = BuildFeatureCollection(neighborhoods, scores)
	})

	assert.Equal(t, 1, fc.Len())
	_, ok := fc.Lookup(42)
	assert.False(t, ok)
	for _, f := range fc.Features {
		assert.NotEqual(t, 42, f.ID())
	}
}

func TestBuildFeatureCollection_Geometry(t *testing.T) {
	neighborhoods := []model.Neighborhood{
		{ID: 1, Name: "Empty", Geometry: geometry(t, `{"type": "Polygon", "coordinates": []}`)},
		{ID: 2, Name: "Nested empty", Geometry: geometry(t, `{"type": "Polygon", "coordinates": [[]]}`)},
		{ID: 3, Name: "Square", Geometry: geometry(t, square)},
		{ID: 4, Name: "No geometry"},
		{ID: 5, Name: "Point", Geometry: geometry(t, `{"type": "Point", "coordinates": [-78.85, 42.88]}`)},
	}

	fc := BuildFeatureCollection(neighborhoods, nil)

	require.Equal(t, 5, fc.Len())
	assert.Equal(t, 1, fc.Drawable())

	sq, ok := fc.Lookup(3)
	require.True(t, ok)
	require.True(t, sq.Drawable())
	b := sq.Bounds()
	assert.InDelta(t, -78.9, b.Min(0), 1e-9)
	assert.InDelta(t, 42.9, b.Max(1), 1e-9)

	for _, id := range []int{1, 2, 4, 5} {
		f, ok := fc.Lookup(id)
		require.True(t, ok)
		assert.False(t, f.Drawable(), "feature %d", id)
		assert.Nil(t, f.Bounds())
	}
}

func TestDecodePolygons_MultiPolygon(t *testing.T) {
	g := geometry(t, `{"type": "MultiPolygon", "coordinates": [
		[[[-78.9, 42.85], [-78.85, 42.85], [-78.85, 42.9], [-78.9, 42.85]]],
		[[[-78.8, 42.85], [-78.75, 42.85], [-78.75, 42.9], [-78.8, 42.85]]]
	]}`)

	polygons, err := DecodePolygons(g)
	require.NoError(t, err)
	assert.Len(t, polygons, 2)
}

func TestInitialViewport(t *testing.T) {
	empty := InitialViewport(FeatureCollection{})
	assert.Nil(t, empty.Bounds)
	assert.Equal(t, 12, empty.Zoom)

	fc := BuildFeatureCollection([]model.Neighborhood{{ID: 1, Name: "Allentown"}}, nil)
	vp := InitialViewport(fc)
	require.NotNil(t, vp.Bounds)
	assert.InDelta(t, -79.0, vp.Bounds.Min(0), 1e-9)
	assert.InDelta(t, 42.8, vp.Bounds.Min(1), 1e-9)
	assert.InDelta(t, -78.7, vp.Bounds.Max(0), 1e-9)
	assert.InDelta(t, 42.95, vp.Bounds.Max(1), 1e-9)
}

func TestFeatureCollection_AccessorsOnReturnedValue(t *testing.T) {
	build := func() FeatureCollection {
		return BuildFeatureCollection(
			[]model.Neighborhood{{ID: 1, Name: "Allentown", Geometry: geometry(t, square)}, {ID: 2, Name: "Kaisertown"}},
			[]model.Score{{NeighborhoodID: 1, ProfitabilityScore: 70}},
		)
	}

	assert.Equal(t, 2, build().Len())
	assert.Equal(t, 1, build().Drawable())

	f, ok := build().Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Allentown", f.Neighborhood.Name)
}
