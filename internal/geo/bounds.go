package geo

import "github.com/twpayne/go-geom"

// Fallback framing of Buffalo, NY. Used instead of the geometry extent so
// the view is usable even when boundaries are missing.
const (
	fallbackMinLng = -79.0
	fallbackMinLat = 42.8
	fallbackMaxLng = -78.7
	fallbackMaxLat = 42.95

	defaultCenterLat = 42.8864
	defaultCenterLng = -78.8784
	defaultZoom      = 12
)

// FallbackBounds returns the hardcoded region the map frames once
// neighborhoods are loaded. X is longitude, Y is latitude.
func FallbackBounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(fallbackMinLng, fallbackMinLat, fallbackMaxLng, fallbackMaxLat)
}

// Viewport is the camera of the map.
type Viewport struct {
	Bounds *geom.Bounds
	Center geom.Coord
	Zoom   int
}

// InitialViewport returns the camera for the given features. With at least
// one feature it frames FallbackBounds regardless of the features' extent;
// with none it stays on the default center.
func InitialViewport(fc FeatureCollection) Viewport {
	vp := Viewport{
		Center: geom.Coord{defaultCenterLng, defaultCenterLat},
		Zoom:   defaultZoom,
	}
	if fc.Len() > 0 {
		vp.Bounds = FallbackBounds()
	}
	return vp
}
