package geo

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Feature is one neighborhood on the map, annotated with its resolved score.
type Feature struct {
	// Polygons is empty when the neighborhood has no drawable boundary.
	Polygons     []*geom.Polygon
	Neighborhood model.Neighborhood
	Score        float64
	Scored       bool
}

// ID returns the neighborhood id.
func (f *Feature) ID() int {
	return f.Neighborhood.ID
}

// Drawable reports whether the feature has a polygon to render.
func (f *Feature) Drawable() bool {
	return len(f.Polygons) > 0
}

// Bounds returns the extent of the feature's polygons, or nil.
func (f *Feature) Bounds() *geom.Bounds {
	if !f.Drawable() {
		return nil
	}
	b := geom.NewBounds(geom.XY)
	for _, p := range f.Polygons {
		b.Extend(p)
	}
	return b
}

// FeatureCollection is the full set of neighborhood features, in the order
// the neighborhoods were listed.
type FeatureCollection struct {
	byID     map[int]int
	Features []Feature
}

// BuildFeatureCollection joins neighborhoods and scores by neighborhood id.
// Neighborhoods without a score get score 0. Scores that reference an
// unknown neighborhood are ignored. Geometry that cannot be decoded is
// logged and treated as absent; it never fails the build.
func BuildFeatureCollection(neighborhoods []model.Neighborhood, scores []model.Score) FeatureCollection {
	index := model.ScoresByNeighborhood(scores)

	fc := FeatureCollection{
		Features: make([]Feature, 0, len(neighborhoods)),
		byID:     make(map[int]int, len(neighborhoods)),
	}

	for _, n := range neighborhoods {
		f := Feature{Neighborhood: n}
		if s, ok := index[n.ID]; ok {
			f.Score = s.ProfitabilityScore
			f.Scored = true
		}

		polygons, err := DecodePolygons(n.Geometry)
		if err != nil {
			common.LogError(err, "Ignoring neighborhood geometry", common.Fields{
				"neighborhood_id": n.ID,
				"neighborhood":    n.Name,
			})
		}
		f.Polygons = polygons

		fc.byID[n.ID] = len(fc.Features)
		fc.Features = append(fc.Features, f)
	}

	for id := range index {
		if _, ok := fc.byID[id]; !ok {
			common.LogDebug("Score references unknown neighborhood", common.Fields{"neighborhood_id": id})
		}
	}

	return fc
}

// Lookup returns the feature for a neighborhood id.
func (fc FeatureCollection) Lookup(id int) (*Feature, bool) {
	i, ok := fc.byID[id]
	if !ok {
		return nil, false
	}
	return &fc.Features[i], true
}

// Len returns the number of features.
func (fc FeatureCollection) Len() int {
	return len(fc.Features)
}

// Drawable returns how many features have a polygon.
func (fc FeatureCollection) Drawable() int {
	n := 0
	for i := range fc.Features {
		if fc.Features[i].Drawable() {
			n++
		}
	}
	return n
}

// DecodePolygons decodes a GeoJSON Polygon or MultiPolygon. A nil geometry
// or empty coordinate arrays yield no polygons and no error.
func DecodePolygons(g *geojson.Geometry) ([]*geom.Polygon, error) {
	const op = "decode geometry"

	if g == nil || g.Coordinates == nil || !hasCoordinates(*g.Coordinates) {
		return nil, nil
	}

	t, err := g.Decode()
	if err != nil {
		return nil, &common.DataShapeError{Op: op, Field: "geometry", Err: err}
	}

	var polygons []*geom.Polygon
	switch v := t.(type) {
	case *geom.Polygon:
		polygons = []*geom.Polygon{v}
	case *geom.MultiPolygon:
		for i := 0; i < v.NumPolygons(); i++ {
			polygons = append(polygons, v.Polygon(i))
		}
	default:
		return nil, &common.DataShapeError{
			Op:    op,
			Field: "geometry.type",
			Err:   fmt.Errorf("unsupported geometry %q", g.Type),
		}
	}

	drawable := polygons[:0]
	for _, p := range polygons {
		if p.NumLinearRings() > 0 && len(p.FlatCoords()) > 0 {
			drawable = append(drawable, p)
		}
	}
	if len(drawable) == 0 {
		return nil, nil
	}
	return drawable, nil
}

// hasCoordinates reports whether a coordinates array contains at least one
// position, looking through any level of nesting.
func hasCoordinates(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Let Decode report the malformed JSON.
		return true
	}
	return containsNumber(v)
}

func containsNumber(v any) bool {
	switch x := v.(type) {
	case float64:
		return true
	case []any:
		for _, item := range x {
			if containsNumber(item) {
				return true
			}
		}
	}
	return false
}
