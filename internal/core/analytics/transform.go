// Package analytics holds the pure computations behind the chart endpoints:
// mapping row sets to point series, projecting them into the 3D view and
// summarising a numeric column.
//
// The two halves coerce numbers differently on purpose. Transform turns a
// missing or non-numeric y into 0 so every point has a plottable value;
// Summarize leaves such values out of its statistics.
package analytics

import (
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// Palette colours pie and doughnut slices, cycled by slice index.
var Palette = []string{
	"rgba(59, 130, 246, 0.8)",
	"rgba(16, 185, 129, 0.8)",
	"rgba(245, 101, 101, 0.8)",
	"rgba(251, 191, 36, 0.8)",
	"rgba(139, 92, 246, 0.8)",
	"rgba(236, 72, 153, 0.8)",
}

// Coerce returns v as a number, or 0 when v is null or not numeric.
func Coerce(v domain.Value) float64 {
	f, ok := v.Float()
	if !ok {
		return 0
	}
	return f
}

// Transform maps rows to one point per row according to cfg.
//
//   - bar, line, area: x is the raw x value, rows with a null x are dropped.
//   - scatter: both axes are numeric, rows with a null x are dropped.
//   - pie, doughnut: every row becomes a slice coloured from Palette.
func Transform(rows []domain.Row, cfg domain.ChartConfig) []domain.Point {
	points := make([]domain.Point, 0, len(rows))
	for _, row := range rows {
		x := row.Get(cfg.XAxis)
		y := Coerce(row.Get(cfg.YAxis))

		switch {
		case cfg.Type.Sliced():
			points = append(points, domain.Point{
				X:     x,
				Y:     y,
				Label: x.Text(),
				Color: Palette[len(points)%len(Palette)],
			})
		case cfg.Type == domain.ChartScatter:
			if x.IsNull() {
				continue
			}
			points = append(points, domain.Point{X: domain.Number(Coerce(x)), Y: y, Label: x.Text()})
		default:
			if x.IsNull() {
				continue
			}
			points = append(points, domain.Point{X: x, Y: y, Label: x.Text()})
		}
	}
	return points
}
