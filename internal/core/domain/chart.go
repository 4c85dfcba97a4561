package domain

import "time"

// ChartKind is the visualisation type chosen by the user.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartLine     ChartKind = "line"
	ChartScatter  ChartKind = "scatter"
	ChartPie      ChartKind = "pie"
	ChartDoughnut ChartKind = "doughnut"
	ChartArea     ChartKind = "area"
)

// Valid reports whether k is one of the supported chart kinds.
func (k ChartKind) Valid() bool {
	switch k {
	case ChartBar, ChartLine, ChartScatter, ChartPie, ChartDoughnut, ChartArea:
		return true
	}
	return false
}

// Categorical reports whether k renders one labelled series.
func (k ChartKind) Categorical() bool {
	return k == ChartBar || k == ChartLine || k == ChartArea
}

// Sliced reports whether k renders one coloured slice per row.
func (k ChartKind) Sliced() bool {
	return k == ChartPie || k == ChartDoughnut
}

// ChartConfig is an immutable set of visualisation parameters. Edits produce
// a new value through ApplyConfig.
type ChartConfig struct {
	Type  ChartKind `json:"type"`
	XAxis string    `json:"xAxis"`
	YAxis string    `json:"yAxis"`
	Title string    `json:"title"`
	Is3D  bool      `json:"is3D"`
}

// ChartConfigPatch carries the fields of an edit; nil fields keep their value.
type ChartConfigPatch struct {
	Type  *ChartKind `json:"type,omitempty"`
	XAxis *string    `json:"xAxis,omitempty"`
	YAxis *string    `json:"yAxis,omitempty"`
	Title *string    `json:"title,omitempty"`
	Is3D  *bool      `json:"is3D,omitempty"`
}

// DefaultChartConfig is the configuration a new chart view starts from.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{Type: ChartBar, Title: "Chart"}
}

// ApplyConfig returns old with every non-nil field of patch replaced.
// old is never modified.
func ApplyConfig(old ChartConfig, patch ChartConfigPatch) ChartConfig {
	next := old
	if patch.Type != nil {
		next.Type = *patch.Type
	}
	if patch.XAxis != nil {
		next.XAxis = *patch.XAxis
	}
	if patch.YAxis != nil {
		next.YAxis = *patch.YAxis
	}
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Is3D != nil {
		next.Is3D = *patch.Is3D
	}
	return next
}

// Point is one derived datum of a chart series.
type Point struct {
	X     Value   `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
}

// ScenePoint is a Point placed in the 3D view's coordinate space.
type ScenePoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// ChartResult is the series computed for one request. It is never stored.
type ChartResult struct {
	ID        string       `json:"id"`
	Type      ChartKind    `json:"type"`
	Title     string       `json:"title"`
	Data      []Point      `json:"data"`
	Scene     []ScenePoint `json:"scene,omitempty"`
	Config    ChartConfig  `json:"config"`
	CreatedAt time.Time    `json:"createdAt"`
}
