package geo

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// MarshalGeoJSON encodes the collection as a GeoJSON FeatureCollection.
// Each feature carries id, name, score and its at-rest style as properties.
// Features without a boundary are emitted with a null geometry.
func MarshalGeoJSON(fc FeatureCollection) ([]byte, error) {
	out := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, fc.Len()),
	}
	if fc.Len() > 0 {
		out.BBox = FallbackBounds()
	}

	for i := range fc.Features {
		f := &fc.Features[i]
		gf := &geojson.Feature{
			ID: strconv.Itoa(f.ID()),
			Properties: map[string]any{
				"id":     f.ID(),
				"name":   f.Neighborhood.Name,
				"score":  f.Score,
				"scored": f.Scored,
				"style":  BaseStyle(f.Score),
			},
		}
		if g := f.geometry(); g != nil {
			gf.Geometry = g
		}
		out.Features = append(out.Features, gf)
	}

	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature collection: %w", err)
	}
	return data, nil
}

func (f *Feature) geometry() geom.T {
	switch len(f.Polygons) {
	case 0:
		return nil
	case 1:
		return f.Polygons[0]
	default:
		mp := geom.NewMultiPolygon(geom.XY)
		for _, p := range f.Polygons {
			if err := mp.Push(p); err != nil {
				continue
			}
		}
		return mp
	}
}
