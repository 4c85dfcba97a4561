package analytics

import (
	"fmt"
	"strconv"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// Statistics describes the numeric values of the y column. The value fields
// are nil when the column has no numeric values.
type Statistics struct {
	Count   int      `json:"count"`
	Average *string  `json:"average"`
	Maximum *float64 `json:"maximum"`
	Minimum *float64 `json:"minimum"`
	Range   *string  `json:"range"`
}

// DataQuality reports how much of the y column is usable and a one-row
// sample of the column types.
type DataQuality struct {
	Completeness       string `json:"completeness"`
	NumericColumns     int    `json:"numericColumns"`
	CategoricalColumns int    `json:"categoricalColumns"`
}

// Insights is the report returned by the ai-insights endpoint.
type Insights struct {
	Summary         string      `json:"summary"`
	Statistics      Statistics  `json:"statistics"`
	Recommendations []string    `json:"recommendations"`
	DataQuality     DataQuality `json:"dataQuality"`
	AISummary       string      `json:"aiSummary,omitempty"`
}

// Summarize computes descriptive statistics of cfg.YAxis over rows. Values
// that are not numeric are excluded, so completeness is the share of rows
// with a numeric y.
func Summarize(rows []domain.Row, cfg domain.ChartConfig) *Insights {
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		if f, ok := row.Get(cfg.YAxis).Float(); ok {
			ys = append(ys, f)
		}
	}

	numeric, categorical := classifyColumns(rows)
	ins := &Insights{
		Statistics: Statistics{Count: len(rows)},
		Recommendations: []string{
			fmt.Sprintf("Consider analyzing the relationship between %s and %s", cfg.XAxis, cfg.YAxis),
			"Look for patterns in the data distribution",
			"Check for outliers that might need investigation",
		},
		DataQuality: DataQuality{
			Completeness:       completeness(len(ys), len(rows)),
			NumericColumns:     numeric,
			CategoricalColumns: categorical,
		},
	}

	if len(ys) == 0 {
		ins.Summary = fmt.Sprintf("Analysis of %d data points found no numeric %s values.", len(rows), cfg.YAxis)
	} else {
		sum, lo, hi := 0.0, ys[0], ys[0]
		for _, y := range ys {
			sum += y
			lo, hi = min(lo, y), max(hi, y)
		}
		avg := fmt.Sprintf("%.2f", sum/float64(len(ys)))
		rng := fmt.Sprintf("%.2f", hi-lo)
		ins.Statistics.Average = &avg
		ins.Statistics.Maximum = &hi
		ins.Statistics.Minimum = &lo
		ins.Statistics.Range = &rng
		ins.Summary = fmt.Sprintf(
			"Analysis of %d data points shows an average %s value of %s. The highest value is %s and the lowest is %s.",
			len(rows), cfg.YAxis, avg, formatNumber(hi), formatNumber(lo),
		)
	}

	switch cfg.Type {
	case domain.ChartLine:
		ins.Recommendations = append(ins.Recommendations, "Consider using time-series analysis if data is temporal")
	case domain.ChartBar:
		ins.Recommendations = append(ins.Recommendations, "Compare categories to identify top performers")
	case domain.ChartScatter:
		ins.Recommendations = append(ins.Recommendations, "Look for correlation patterns between variables")
	}

	return ins
}

// classifyColumns samples the first row only.
func classifyColumns(rows []domain.Row) (numeric, categorical int) {
	if len(rows) == 0 {
		return 0, 0
	}
	for _, v := range rows[0] {
		if _, ok := v.Float(); ok {
			numeric++
		} else {
			categorical++
		}
	}
	return numeric, categorical
}

func completeness(valid, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(valid)/float64(total)*100)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
