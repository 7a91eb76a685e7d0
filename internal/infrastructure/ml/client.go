package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"HackerNews/internal/ports"
)

const sentimentPath = "/text/analytics/v3.1/sentiment"

// ErrNotConfigured is returned when the endpoint or key is missing.
var ErrNotConfigured = errors.New("text analytics client misconfigured")

// Client talks to a Text Analytics compatible service for title sentiment.
type Client struct {
	endpoint string
	apiKey   string
	language string
	http     *http.Client
}

var _ ports.SentimentAnalyzer = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		language: "en",
		http:     &http.Client{Timeout: timeout},
	}
}

type document struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type sentimentResponse struct {
	Documents []struct {
		ID               string `json:"id"`
		Sentiment        string `json:"sentiment"`
		ConfidenceScores struct {
			Positive float64 `json:"positive"`
			Neutral  float64 `json:"neutral"`
			Negative float64 `json:"negative"`
		} `json:"confidenceScores"`
	} `json:"documents"`
	Errors []struct {
		ID    string `json:"id"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"errors"`
}

// Sentiment scores text in [-1, 1] as positive minus negative confidence.
func (c *Client) Sentiment(ctx context.Context, text string) (float64, error) {
	if c == nil || c.endpoint == "" || c.apiKey == "" {
		return 0, ErrNotConfigured
	}

	payload := map[string]any{
		"documents": []document{{ID: "1", Language: c.language, Text: text}},
	}

	var resp sentimentResponse
	if err := c.post(ctx, sentimentPath, payload, &resp); err != nil {
		return 0, err
	}

	if len(resp.Errors) > 0 {
		e := resp.Errors[0].Error
		return 0, fmt.Errorf("text analytics error %s: %s", e.Code, e.Message)
	}
	if len(resp.Documents) == 0 {
		return 0, fmt.Errorf("text analytics returned no documents")
	}

	scores := resp.Documents[0].ConfidenceScores
	return scores.Positive - scores.Negative, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
