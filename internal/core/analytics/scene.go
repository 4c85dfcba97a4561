package analytics

import "github.com/y-sudharshan/SheetWise/internal/core/domain"

const (
	sceneWidth  = 8.0 // x spans [-4, 4]
	sceneHeight = 6.0 // y spans [0, 6]
)

// Project3D places points in the 3D view's space. Both axes are coerced to
// numbers and rescaled to the scene bounds; an axis whose values are all equal
// collapses to the centre (x) or the floor (y).
func Project3D(points []domain.Point) []domain.ScenePoint {
	if len(points) == 0 {
		return nil
	}

	xs := make([]float64, len(points))
	minX, maxX := Coerce(points[0].X), Coerce(points[0].X)
	minY, maxY := points[0].Y, points[0].Y
	for i, p := range points {
		xs[i] = Coerce(p.X)
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	scene := make([]domain.ScenePoint, len(points))
	for i, p := range points {
		scene[i] = domain.ScenePoint{
			X:     rescale(xs[i], minX, maxX, sceneWidth, sceneWidth/2) - sceneWidth/2,
			Y:     rescale(p.Y, minY, maxY, sceneHeight, 0),
			Label: p.Label,
		}
	}
	return scene
}

// rescale maps v from [lo, hi] onto [0, span], or returns flat when the
// range is empty.
func rescale(v, lo, hi, span, flat float64) float64 {
	if hi == lo {
		return flat
	}
	return (v - lo) / (hi - lo) * span
}
