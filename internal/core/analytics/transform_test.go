package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

func salesRows() []domain.Row {
	return []domain.Row{
		{"region": domain.String("North"), "sales": domain.Number(10)},
		{"region": domain.String("South"), "sales": domain.String("20")},
		{"region": domain.Null(), "sales": domain.Number(5)},
		{"region": domain.String("West"), "sales": domain.String("n/a")},
		{"region": domain.String("East")},
	}
}

func TestTransform_CategoricalDropsNullX(t *testing.T) {
	for _, kind := range []domain.ChartKind{domain.ChartBar, domain.ChartLine, domain.ChartArea} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := domain.ChartConfig{Type: kind, XAxis: "region", YAxis: "sales"}
			points := Transform(salesRows(), cfg)

			require.Len(t, points, 4)
			assert.Equal(t, "North", points[0].Label)
			assert.Equal(t, 10.0, points[0].Y)
			assert.Equal(t, 20.0, points[1].Y)
			assert.Equal(t, 0.0, points[2].Y, "non-numeric y coerces to 0")
			assert.Equal(t, 0.0, points[3].Y, "missing y coerces to 0")
			for _, p := range points {
				assert.Empty(t, p.Color)
			}
		})
	}
}

func TestTransform_YIsAlwaysANumber(t *testing.T) {
	rows := []domain.Row{
		{"x": domain.String("a"), "y": domain.String("NaN")},
		{"x": domain.String("b"), "y": domain.String("Infinity")},
		{"x": domain.String("c"), "y": domain.Null()},
	}
	for _, kind := range []domain.ChartKind{domain.ChartBar, domain.ChartScatter, domain.ChartPie} {
		for _, p := range Transform(rows, domain.ChartConfig{Type: kind, XAxis: "x", YAxis: "y"}) {
			assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0), "kind %s produced %v", kind, p.Y)
		}
	}
}

func TestTransform_ScatterCoercesX(t *testing.T) {
	rows := []domain.Row{
		{"w": domain.String("1.5"), "h": domain.Number(3)},
		{"w": domain.String("wide"), "h": domain.Number(4)},
		{"w": domain.Null(), "h": domain.Number(9)},
	}
	points := Transform(rows, domain.ChartConfig{Type: domain.ChartScatter, XAxis: "w", YAxis: "h"})

	require.Len(t, points, 2)
	x0, ok := points[0].X.Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, x0)
	x1, _ := points[1].X.Float()
	assert.Equal(t, 0.0, x1)
	assert.Equal(t, "wide", points[1].Label)
}

func TestTransform_PieKeepsEveryRowAndCyclesPalette(t *testing.T) {
	rows := make([]domain.Row, 8)
	for i := range rows {
		rows[i] = domain.Row{"k": domain.Number(float64(i)), "v": domain.Number(1)}
	}
	rows[2] = domain.Row{"k": domain.Null(), "v": domain.Number(1)}

	points := Transform(rows, domain.ChartConfig{Type: domain.ChartDoughnut, XAxis: "k", YAxis: "v"})

	require.Len(t, points, 8)
	assert.Equal(t, Palette[0], points[0].Color)
	assert.Equal(t, Palette[5], points[5].Color)
	assert.Equal(t, Palette[0], points[6].Color)
	assert.Equal(t, Palette[1], points[7].Color)
	assert.True(t, points[2].X.IsNull())
}

func TestProject3D_Bounds(t *testing.T) {
	points := []domain.Point{
		{X: domain.Number(0), Y: 0},
		{X: domain.Number(5), Y: 50},
		{X: domain.Number(10), Y: 100},
	}
	scene := Project3D(points)

	require.Len(t, scene, 3)
	assert.InDelta(t, -4, scene[0].X, 1e-9)
	assert.InDelta(t, 0, scene[1].X, 1e-9)
	assert.InDelta(t, 4, scene[2].X, 1e-9)
	assert.InDelta(t, 0, scene[0].Y, 1e-9)
	assert.InDelta(t, 3, scene[1].Y, 1e-9)
	assert.InDelta(t, 6, scene[2].Y, 1e-9)
}

func TestProject3D_FlatAxes(t *testing.T) {
	points := []domain.Point{
		{X: domain.String("a"), Y: 7},
		{X: domain.String("b"), Y: 7},
	}
	for _, sp := range Project3D(points) {
		assert.Equal(t, 0.0, sp.X)
		assert.Equal(t, 0.0, sp.Y)
	}
	assert.Nil(t, Project3D(nil))
}
