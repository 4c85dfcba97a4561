package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/api/metrics"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

const defaultDownloadFormat = "png"

type ChartHandler struct {
	charts ports.ChartService
	now    func() time.Time
}

func NewChartHandler(charts ports.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts, now: time.Now}
}

// Generate builds a chart series from inline rows or stored sheet data.
//
// @Summary      Generate chart data
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateChartRequest  true  "Chart configuration and rows"
// @Success      200   {object}  chartResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /charts/generate [post]
func (h *ChartHandler) Generate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req generateChartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	chart, err := h.charts.Generate(c.Request().Context(), ports.GenerateChartInput{
		Actor:  user,
		Patch:  req.Config,
		Rows:   req.Data,
		DataID: req.DataID,
		FileID: req.FileID,
	})
	if err != nil {
		return err
	}

	metrics.ChartsGeneratedTotal.WithLabelValues(string(chart.Type)).Inc()
	metrics.ChartPoints.Observe(float64(len(chart.Data)))
	return c.JSON(http.StatusOK, chartResponse{Success: true, Chart: chart})
}

// Download acknowledges an export request for the chart in chartData. Images
// are rendered by the client; the returned URL only names the export.
//
// @Summary      Request a chart download
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      downloadChartRequest  true  "Chart to export"
// @Success      200   {object}  downloadChartResponse
// @Failure      400   {object}  errorResponse
// @Router       /charts/download [post]
func (h *ChartHandler) Download(c echo.Context) error {
	var req downloadChartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !bytes.HasPrefix(bytes.TrimSpace(req.ChartData), []byte("{")) {
		return echo.NewHTTPError(http.StatusBadRequest, "chartData is required")
	}
	format := req.Format
	if format == "" {
		format = defaultDownloadFormat
	}

	return c.JSON(http.StatusOK, downloadChartResponse{
		Success:     true,
		Message:     "Chart download initiated",
		DownloadURL: fmt.Sprintf("/api/charts/download/%d.%s", h.now().UnixMilli(), format),
	})
}

// Insights computes descriptive statistics and recommendations for a row set.
//
// @Summary      Data insights
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      insightsRequest  true  "Rows and chart configuration"
// @Success      200   {object}  insightsResponse
// @Failure      400   {object}  errorResponse
// @Router       /charts/ai-insights [post]
func (h *ChartHandler) Insights(c echo.Context) error {
	var req insightsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ins, err := h.charts.Insights(c.Request().Context(), req.Data, req.Config)
	if err != nil {
		return err
	}

	narrative := "no"
	if ins.AISummary != "" {
		narrative = "yes"
	}
	metrics.InsightsTotal.WithLabelValues(narrative).Inc()
	return c.JSON(http.StatusOK, insightsResponse{Success: true, Insights: ins})
}
