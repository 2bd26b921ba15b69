package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"vocab-quiz-service/internal/analyze"
)

// AnalyzeHandler proxies sentence-analysis requests to the remote oracle.
type AnalyzeHandler struct {
	client *analyze.Client
	log    *zap.Logger
}

func NewAnalyzeHandler(client *analyze.Client, log *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{client: client, log: log}
}

type analyzeRequest struct {
	Sentence string `json:"sentence"`
}

type analyzeResponse struct {
	Success  bool              `json:"success"`
	Analysis *analyze.Analysis `json:"analysis,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResponse{Error: "invalid request body"})
		return
	}

	analysis, err := h.client.AnalyzeSentence(r.Context(), req.Sentence)
	if err != nil {
		if errors.Is(err, analyze.ErrEmptySentence) {
			writeJSON(w, http.StatusBadRequest, analyzeResponse{Error: err.Error()})
			return
		}
		h.log.Warn("sentence analysis failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, analyzeResponse{Error: "analysis service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Analysis: analysis})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
