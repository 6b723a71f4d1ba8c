package geo

import "github.com/twpayne/go-geom"

// NoFeature marks a raster cell outside every polygon.
const NoFeature = -1

// Raster is a character-cell rendering of a feature collection. Cells hold
// an index into FeatureCollection.Features or NoFeature.
type Raster struct {
	Bounds *geom.Bounds
	Cells  [][]int
	Width  int
	Height int
}

// Rasterize samples the center of each cell of a width x height grid laid
// over bounds. Row 0 is the northern edge. Later features win overlaps.
func Rasterize(fc FeatureCollection, bounds *geom.Bounds, width, height int) Raster {
	r := Raster{Bounds: bounds, Width: max(width, 0), Height: max(height, 0)}
	r.Cells = make([][]int, r.Height)
	for row := range r.Cells {
		r.Cells[row] = make([]int, r.Width)
		for col := range r.Cells[row] {
			r.Cells[row][col] = NoFeature
		}
	}
	if bounds == nil || r.Width == 0 || r.Height == 0 {
		return r
	}

	for i := range fc.Features {
		f := &fc.Features[i]
		if !f.Drawable() {
			continue
		}
		fb := f.Bounds()
		for row := 0; row < r.Height; row++ {
			for col := 0; col < r.Width; col++ {
				p := r.CellCenter(col, row)
				if !fb.OverlapsPoint(geom.XY, p) {
					continue
				}
				if featureContains(f, p) {
					r.Cells[row][col] = i
				}
			}
		}
	}

	return r
}

// CellCenter returns the lng/lat at the center of a cell.
func (r Raster) CellCenter(col, row int) geom.Coord {
	minX, minY := r.Bounds.Min(0), r.Bounds.Min(1)
	maxX, maxY := r.Bounds.Max(0), r.Bounds.Max(1)
	x := minX + (float64(col)+0.5)/float64(r.Width)*(maxX-minX)
	y := maxY - (float64(row)+0.5)/float64(r.Height)*(maxY-minY)
	return geom.Coord{x, y}
}

// At returns the feature index at a cell, or NoFeature when out of range.
func (r Raster) At(col, row int) int {
	if row < 0 || row >= len(r.Cells) || col < 0 || col >= len(r.Cells[row]) {
		return NoFeature
	}
	return r.Cells[row][col]
}

func featureContains(f *Feature, p geom.Coord) bool {
	for _, poly := range f.Polygons {
		if polygonContains(poly, p) {
			return true
		}
	}
	return false
}

// polygonContains uses the even-odd rule across all rings, so holes are
// excluded.
func polygonContains(poly *geom.Polygon, p geom.Coord) bool {
	inside := false
	stride := poly.Stride()
	for i := 0; i < poly.NumLinearRings(); i++ {
		flat := poly.LinearRing(i).FlatCoords()
		n := len(flat) / stride
		for a, b := 0, n-1; a < n; b, a = a, a+1 {
			ax, ay := flat[a*stride], flat[a*stride+1]
			bx, by := flat[b*stride], flat[b*stride+1]
			if (ay > p[1]) != (by > p[1]) &&
				p[0] < (bx-ax)*(p[1]-ay)/(by-ay)+ax {
				inside = !inside
			}
		}
	}
	return inside
}
