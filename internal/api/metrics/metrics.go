// Package metrics defines all custom Prometheus metrics of the SheetWise API.
// It is the single source of truth for metric names, labels and help strings.
// Metrics are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sheetwise"

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts upload attempts.
// Label:
//   - result: "ok", "rejected" (4xx) or "failed" (5xx)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of workbook uploads, by result.",
	},
	[]string{"result"},
)

// UploadBytes observes the size of accepted workbooks.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size of accepted workbook uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(4<<10, 4, 7), // 4KiB … 16MiB
	},
)

// SheetsParsedTotal counts sheets persisted from accepted uploads.
var SheetsParsedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sheets_parsed_total",
		Help:      "Total number of worksheets parsed and stored.",
	},
)

// FilesDeletedTotal counts completed file deletions.
var FilesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_deleted_total",
		Help:      "Total number of files deleted with their data.",
	},
)

// ── Chart metrics ─────────────────────────────────────────────────────────────

// ChartsGeneratedTotal counts generated chart series.
// Label:
//   - type: chart kind (bar, line, scatter, pie, doughnut, area)
var ChartsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "charts_generated_total",
		Help:      "Total number of chart series generated, by chart type.",
	},
	[]string{"type"},
)

// ChartPoints observes the number of points per generated chart.
var ChartPoints = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chart_points",
		Help:      "Number of points in generated chart series.",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 7),
	},
)

// InsightsTotal counts insight reports.
// Label:
//   - narrative: "yes" when an AI narrative was attached, "no" otherwise
var InsightsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insights_total",
		Help:      "Total number of insight reports, by whether a narrative was attached.",
	},
	[]string{"narrative"},
)
