package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"HackerNews/internal/config"
	"HackerNews/internal/ports"
)

const defaultSystemPrompt = "You rate the sentiment of news headlines. " +
	"Reply with a single number between -1 (very negative) and 1 (very positive) and nothing else."

// ChatGPTClient implements ports.SentimentAnalyzer backed by OpenAI-compatible APIs.
type ChatGPTClient struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.SentimentAnalyzer = (*ChatGPTClient)(nil)

// NewChatGPTClient builds a client from configuration.
func NewChatGPTClient(cfg config.ChatGPTConfig) *ChatGPTClient {
	return &ChatGPTClient{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type completion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Sentiment asks the model to rate the headline and parses its numeric reply.
func (c *ChatGPTClient) Sentiment(ctx context.Context, text string) (float64, error) {
	if c == nil {
		return 0, fmt.Errorf("chatgpt client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return 0, fmt.Errorf("chatgpt client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":       c.model,
		"temperature": 0,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.systemPrompt)},
			{"role": "user", "content": text},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("marshal chatgpt payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate headline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("chatgpt error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out completion
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode chatgpt response: %w", err)
	}
	if len(out.Choices) == 0 {
		return 0, fmt.Errorf("chatgpt returned no choices")
	}

	return parseScore(out.Choices[0].Message.Content)
}

// parseScore reads the model reply and clamps it to [-1, 1].
func parseScore(reply string) (float64, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimRight(reply, ".")
	value, err := strconv.ParseFloat(reply, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected chatgpt reply %q: %w", reply, err)
	}
	return max(-1, min(1, value)), nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return defaultSystemPrompt
	}
	return prompt
}
