package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAnalyzeSentence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["sentence"] != "She go to school." {
			t.Errorf("sentence = %q", req["sentence"])
		}
		_ = json.NewEncoder(w).Encode(envelope{
			Success: true,
			Analysis: &Analysis{
				Original:  "She go to school.",
				Corrected: "She goes to school.",
				HasErrors: true,
				Errors:    []string{"subject-verb agreement"},
				BasicInfo: &BasicInfo{Tense: "present", WordCount: 4},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	analysis, err := client.AnalyzeSentence(context.Background(), "She go to school.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Corrected != "She goes to school." || !analysis.HasErrors {
		t.Fatalf("unexpected analysis %+v", analysis)
	}
	if analysis.BasicInfo == nil || analysis.BasicInfo.Tense != "present" {
		t.Fatalf("basic info missing: %+v", analysis.BasicInfo)
	}
}

func TestAnalyzeSentenceEmptyInput(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second)

	if _, err := client.AnalyzeSentence(context.Background(), "   "); !errors.Is(err, ErrEmptySentence) {
		t.Fatalf("expected ErrEmptySentence, got %v", err)
	}
}

func TestAnalyzeSentenceUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.AnalyzeSentence(context.Background(), "hello"); err == nil || !strings.Contains(err.Error(), "unexpected status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestAnalyzeSentenceServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: "model unavailable"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.AnalyzeSentence(context.Background(), "hello"); err == nil || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected service error, got %v", err)
	}
}
