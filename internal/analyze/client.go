package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// The analysis endpoint is an opaque oracle: sentence in, structured analysis
// out, or an error. No grammar logic lives on this side of the wire.

var ErrEmptySentence = errors.New("sentence is empty")

// BasicInfo summarizes sentence-level grammar facts.
type BasicInfo struct {
	SentenceType    string `json:"sentenceType,omitempty"`
	Structure       string `json:"structure,omitempty"`
	Mood            string `json:"mood,omitempty"`
	Voice           string `json:"voice,omitempty"`
	Tense           string `json:"tense,omitempty"`
	WordCount       int    `json:"wordCount,omitempty"`
	ComplexityScore string `json:"complexityScore,omitempty"`
}

// DifficultyRating grades the sentence for learners.
type DifficultyRating struct {
	Score     int    `json:"score,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Analysis is the oracle's structured verdict. Fields are optional; the
// service returns whatever subset it produced.
type Analysis struct {
	Original           string            `json:"original,omitempty"`
	Corrected          string            `json:"corrected,omitempty"`
	HasErrors          bool              `json:"hasErrors,omitempty"`
	BasicInfo          *BasicInfo        `json:"basicInfo,omitempty"`
	Errors             []string          `json:"errors,omitempty"`
	Improvements       []string          `json:"improvements,omitempty"`
	LearningTips       []string          `json:"learningTips,omitempty"`
	KeyGrammarConcepts []string          `json:"keyGrammarConcepts,omitempty"`
	DifficultyRating   *DifficultyRating `json:"difficultyRating,omitempty"`
}

type envelope struct {
	Success  bool      `json:"success"`
	Analysis *Analysis `json:"analysis"`
	Error    string    `json:"error"`
}

// Client calls the remote sentence-analysis service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AnalyzeSentence posts the sentence and decodes the oracle's response. A new
// call simply supersedes the previous one; there are no retries here.
func (c *Client) AnalyzeSentence(ctx context.Context, sentence string) (*Analysis, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, ErrEmptySentence
	}

	body, err := json.Marshal(map[string]string{"sentence": sentence})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze sentence: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyze sentence: unexpected status %d", resp.StatusCode)
	}

	var out envelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Analysis == nil {
		if out.Error != "" {
			return nil, fmt.Errorf("analyze sentence: %s", out.Error)
		}
		return nil, errors.New("analyze sentence: empty analysis in response")
	}
	return out.Analysis, nil
}
