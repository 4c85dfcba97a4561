package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/y-sudharshan/SheetWise/internal/core/analytics"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

const insightKeyPrefix = "insights:"

type chartService struct {
	batches  ports.BatchRepository
	narrator ports.Narrator
	cache    ports.InsightCache
	log      zerolog.Logger
}

// NewChartService returns a ChartService. narrator and cache are optional;
// without a narrator insight reports carry no aiSummary.
func NewChartService(
	batches ports.BatchRepository,
	narrator ports.Narrator,
	cache ports.InsightCache,
	log zerolog.Logger,
) ports.ChartService {
	return &chartService{batches: batches, narrator: narrator, cache: cache, log: log}
}

func (s *chartService) Generate(ctx context.Context, in ports.GenerateChartInput) (*domain.ChartResult, error) {
	cfg := domain.ApplyConfig(domain.DefaultChartConfig(), in.Patch)
	if cfg.XAxis == "" || cfg.YAxis == "" {
		return nil, domain.ErrInvalidChartConfig
	}
	if !cfg.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedChartType, cfg.Type)
	}

	rows, err := s.rows(ctx, in)
	if err != nil {
		return nil, err
	}

	points := analytics.Transform(rows, cfg)
	result := &domain.ChartResult{
		ID:        uuid.NewString(),
		Type:      cfg.Type,
		Title:     cfg.Title,
		Data:      points,
		Config:    cfg,
		CreatedAt: time.Now().UTC(),
	}
	if cfg.Is3D {
		result.Scene = analytics.Project3D(points)
	}
	return result, nil
}

func (s *chartService) rows(ctx context.Context, in ports.GenerateChartInput) ([]domain.Row, error) {
	var (
		batch *domain.DataBatch
		err   error
	)
	switch {
	case in.DataID != "":
		batch, err = s.batches.FindByID(ctx, in.DataID)
	case in.FileID != "":
		batch, err = s.batches.FindPrimary(ctx, in.FileID)
	default:
		return in.Rows, nil
	}
	if err != nil {
		return nil, err
	}
	if !in.Actor.CanAccess(batch.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return batch.Rows, nil
}

// Insights summarises rows and, when a narrator is configured, attaches a
// generated narrative. Narrator and cache errors only drop the narrative.
func (s *chartService) Insights(ctx context.Context, rows []domain.Row, cfg domain.ChartConfig) (*analytics.Insights, error) {
	if len(rows) == 0 {
		return nil, domain.ErrNoData
	}

	ins := analytics.Summarize(rows, cfg)
	if s.narrator == nil {
		return ins, nil
	}

	prompt := insightPrompt(ins, cfg)
	key := insightKeyPrefix + promptHash(prompt)
	log := s.log.With().Str("cache_key", key).Logger()

	if s.cache != nil {
		text, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("insight cache read failed")
		case ok:
			ins.AISummary = text
			return ins, nil
		}
	}

	text, err := s.narrator.Narrate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("insight narrative failed")
		return ins, nil
	}
	ins.AISummary = strings.TrimSpace(text)

	if s.cache != nil && ins.AISummary != "" {
		if err := s.cache.Set(ctx, key, ins.AISummary); err != nil {
			log.Warn().Err(err).Msg("insight cache write failed")
		}
	}
	return ins, nil
}

// insightPrompt only uses the computed report, so equal reports share a
// cache entry.
func insightPrompt(ins *analytics.Insights, cfg domain.ChartConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a data analyst. In three sentences or fewer, describe what a %s chart of %q by %q shows.\n",
		cfg.Type, cfg.YAxis, cfg.XAxis)
	fmt.Fprintf(&b, "Rows: %d. Completeness of %s: %s.\n", ins.Statistics.Count, cfg.YAxis, ins.DataQuality.Completeness)
	if st := ins.Statistics; st.Average != nil {
		fmt.Fprintf(&b, "Average: %s. Maximum: %s. Minimum: %s. Range: %s.\n",
			*st.Average, formatFloat(*st.Maximum), formatFloat(*st.Minimum), *st.Range)
	} else {
		b.WriteString("The column has no numeric values.\n")
	}
	fmt.Fprintf(&b, "Numeric columns: %d. Categorical columns: %d.",
		ins.DataQuality.NumericColumns, ins.DataQuality.CategoricalColumns)
	return b.String()
}

func promptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func formatFloat(f float64) string {
	return domain.Number(f).Text()
}
