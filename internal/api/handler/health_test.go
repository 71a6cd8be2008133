package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := do(NewHealthHandler().Liveness, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := do(NewReadinessHandler(map[string]Pinger{"session_store": ok}).Readiness, http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(NewReadinessHandler(map[string]Pinger{"session_store": ok, "mongodb": down}).Readiness, http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	resp := decode(t, rec)
	deps, _ := resp["dependencies"].(map[string]any)
	mongo, _ := deps["mongodb"].(map[string]any)
	if resp["status"] != "degraded" || mongo["error"] != "connection refused" {
		t.Fatalf("unexpected readiness payload %+v", resp)
	}
}
