package ports

import (
	"context"

	"github.com/y-sudharshan/SheetWise/internal/core/analytics"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// GenerateChartInput names the rows inline, by DataBatch id, or by file id
// (the file's first sheet), in increasing order of precedence: DataID wins
// over FileID, which wins over Rows.
type GenerateChartInput struct {
	Actor  *domain.User
	Patch  domain.ChartConfigPatch
	Rows   []domain.Row
	DataID string
	FileID string
}

// ChartService builds chart series and insight reports on demand.
type ChartService interface {
	Generate(ctx context.Context, in GenerateChartInput) (*domain.ChartResult, error)
	Insights(ctx context.Context, rows []domain.Row, cfg domain.ChartConfig) (*analytics.Insights, error)
}
