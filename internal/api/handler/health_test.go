package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "", nil)
	if err := (&HealthHandler{}).Liveness(c); err != nil {
		t.Fatalf("Liveness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []dependencyCheck
		wantCode   int
		wantStatus string
		wantRedis  string
	}{
		{
			name:       "all up",
			checks:     []dependencyCheck{{name: "mongodb", ping: ok}, {name: "redis", ping: ok}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantRedis:  "ok",
		},
		{
			name:       "redis disabled",
			checks:     []dependencyCheck{{name: "mongodb", ping: ok}, {name: "redis"}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantRedis:  "disabled",
		},
		{
			name:       "redis down",
			checks:     []dependencyCheck{{name: "mongodb", ping: ok}, {name: "redis", ping: down}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantRedis:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodGet, "/health/ready", "", nil)
			if err := (&HealthHandler{checks: tt.checks}).Readiness(c); err != nil {
				t.Fatalf("Readiness: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp readinessResponse
			decode(t, rec, &resp)
			if resp.Status != tt.wantStatus || resp.Dependencies["redis"].Status != tt.wantRedis {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}
