package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

type stubNarrator struct {
	calls int
	text  string
	err   error
}

func (n *stubNarrator) Narrate(_ context.Context, prompt string) (string, error) {
	n.calls++
	if n.err != nil {
		return "", n.err
	}
	return n.text, nil
}

type stubInsightCache struct {
	entries map[string]string
	getErr  error
}

func newStubInsightCache() *stubInsightCache {
	return &stubInsightCache{entries: make(map[string]string)}
}

func (c *stubInsightCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *stubInsightCache) Set(_ context.Context, key, narrative string) error {
	c.entries[key] = narrative
	return nil
}

func kindPtr(k domain.ChartKind) *domain.ChartKind { return &k }

func revenueRows() []domain.Row {
	return []domain.Row{
		{"month": domain.String("Jan"), "revenue": domain.Number(10)},
		{"month": domain.Null(), "revenue": domain.Number(15)},
		{"month": domain.String("Feb"), "revenue": domain.String("20")},
	}
}

func TestChartService_Generate_InlineRows(t *testing.T) {
	svc := NewChartService(newStubBatchRepo(), nil, nil, zerolog.Nop())

	res, err := svc.Generate(context.Background(), ports.GenerateChartInput{
		Actor: owner,
		Patch: domain.ChartConfigPatch{XAxis: strPtr("month"), YAxis: strPtr("revenue")},
		Rows:  revenueRows(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.ID == "" || res.Type != domain.ChartBar || res.Title != "Chart" {
		t.Fatalf("defaults not applied: %+v", res)
	}
	if len(res.Data) != 2 || res.Data[1].Y != 20 {
		t.Fatalf("unexpected points: %+v", res.Data)
	}
	if res.Scene != nil {
		t.Fatalf("scene must be empty for 2D charts")
	}
}

func TestChartService_Generate_Validation(t *testing.T) {
	svc := NewChartService(newStubBatchRepo(), nil, nil, zerolog.Nop())

	_, err := svc.Generate(context.Background(), ports.GenerateChartInput{
		Patch: domain.ChartConfigPatch{XAxis: strPtr("month")},
	})
	if err != domain.ErrInvalidChartConfig {
		t.Fatalf("expected ErrInvalidChartConfig, got %v", err)
	}

	_, err = svc.Generate(context.Background(), ports.GenerateChartInput{
		Patch: domain.ChartConfigPatch{Type: kindPtr("radar"), XAxis: strPtr("a"), YAxis: strPtr("b")},
	})
	if !errors.Is(err, domain.ErrUnsupportedChartType) {
		t.Fatalf("expected ErrUnsupportedChartType, got %v", err)
	}
}

func TestChartService_Generate_FromDataID(t *testing.T) {
	batches := newStubBatchRepo()
	_ = batches.Create(context.Background(), &domain.DataBatch{FileID: "f1", OwnerID: "owner", Rows: revenueRows()})
	dataID := batches.batches[0].ID
	svc := NewChartService(batches, nil, nil, zerolog.Nop())

	in := ports.GenerateChartInput{
		Actor: owner,
		Patch: domain.ChartConfigPatch{
			Type: kindPtr(domain.ChartPie), XAxis: strPtr("month"), YAxis: strPtr("revenue"), Is3D: boolPtr(true),
		},
		DataID: dataID,
	}
	res, err := svc.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Data) != 3 || res.Data[1].Color == "" {
		t.Fatalf("pie must keep every row with a colour: %+v", res.Data)
	}
	if len(res.Scene) != 3 {
		t.Fatalf("expected scene projection, got %+v", res.Scene)
	}

	in.Actor = stranger
	if _, err := svc.Generate(context.Background(), in); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	in.DataID = "missing"
	if _, err := svc.Generate(context.Background(), in); err != domain.ErrDataNotFound {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

func TestChartService_Generate_FromFileID(t *testing.T) {
	batches := newStubBatchRepo()
	_ = batches.Create(context.Background(), &domain.DataBatch{FileID: "f1", OwnerID: "owner", SheetIndex: 0, Rows: revenueRows()})
	_ = batches.Create(context.Background(), &domain.DataBatch{FileID: "f1", OwnerID: "owner", SheetIndex: 1})
	svc := NewChartService(batches, nil, nil, zerolog.Nop())

	res, err := svc.Generate(context.Background(), ports.GenerateChartInput{
		Actor:  admin,
		Patch:  domain.ChartConfigPatch{XAxis: strPtr("month"), YAxis: strPtr("revenue")},
		Rows:   []domain.Row{{"month": domain.String("ignored"), "revenue": domain.Number(1)}},
		FileID: "f1",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Data) != 2 || res.Data[0].Label != "Jan" {
		t.Fatalf("expected the first sheet's rows, got %+v", res.Data)
	}
}

func TestChartService_Insights_NoData(t *testing.T) {
	svc := NewChartService(newStubBatchRepo(), nil, nil, zerolog.Nop())
	if _, err := svc.Insights(context.Background(), nil, domain.ChartConfig{YAxis: "v"}); err != domain.ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestChartService_Insights_WithoutNarrator(t *testing.T) {
	svc := NewChartService(newStubBatchRepo(), nil, nil, zerolog.Nop())

	ins, err := svc.Insights(context.Background(), revenueRows(), domain.ChartConfig{Type: domain.ChartBar, XAxis: "month", YAxis: "revenue"})
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if ins.AISummary != "" {
		t.Fatalf("unexpected narrative %q", ins.AISummary)
	}
	if *ins.Statistics.Average != "15.00" {
		t.Fatalf("unexpected average %s", *ins.Statistics.Average)
	}
}

func TestChartService_Insights_NarrativeIsCached(t *testing.T) {
	narrator := &stubNarrator{text: "  Revenue grows steadily.  "}
	cache := newStubInsightCache()
	svc := NewChartService(newStubBatchRepo(), narrator, cache, zerolog.Nop())
	cfg := domain.ChartConfig{Type: domain.ChartLine, XAxis: "month", YAxis: "revenue"}

	for i := 0; i < 2; i++ {
		ins, err := svc.Insights(context.Background(), revenueRows(), cfg)
		if err != nil {
			t.Fatalf("Insights: %v", err)
		}
		if ins.AISummary != "Revenue grows steadily." {
			t.Fatalf("unexpected narrative %q", ins.AISummary)
		}
	}
	if narrator.calls != 1 {
		t.Fatalf("expected one narrator call, got %d", narrator.calls)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(cache.entries))
	}
	for key := range cache.entries {
		if !strings.HasPrefix(key, "insights:") || len(key) != len("insights:")+64 {
			t.Fatalf("unexpected cache key %q", key)
		}
	}
}

func TestChartService_Insights_NarratorFailureIsSoft(t *testing.T) {
	cache := newStubInsightCache()
	cache.getErr = errors.New("redis down")
	svc := NewChartService(newStubBatchRepo(), &stubNarrator{err: errors.New("quota exceeded")}, cache, zerolog.Nop())

	ins, err := svc.Insights(context.Background(), revenueRows(), domain.ChartConfig{YAxis: "revenue"})
	if err != nil {
		t.Fatalf("narrator failure must not fail the request: %v", err)
	}
	if ins.AISummary != "" || ins.Summary == "" {
		t.Fatalf("unexpected insights: %+v", ins)
	}
}
