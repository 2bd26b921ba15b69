package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"vocab-quiz-service/internal/analyze"
)

func newAnalyzeProxy(t *testing.T, upstream http.HandlerFunc) *AnalyzeHandler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return NewAnalyzeHandler(analyze.NewClient(srv.URL, time.Second), zap.NewNop())
}

func TestAnalyzeHandlerProxiesAnalysis(t *testing.T) {
	handler := newAnalyzeProxy(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"analysis": map[string]any{"original": "I has a pen.", "corrected": "I have a pen.", "hasErrors": true},
		})
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"sentence":"I has a pen."}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Analysis == nil || resp.Analysis.Corrected != "I have a pen." {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAnalyzeHandlerRejectsGet(t *testing.T) {
	handler := newAnalyzeProxy(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestAnalyzeHandlerEmptySentence(t *testing.T) {
	handler := newAnalyzeProxy(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"sentence":"  "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeHandlerUpstreamFailure(t *testing.T) {
	handler := newAnalyzeProxy(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"sentence":"hello"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
