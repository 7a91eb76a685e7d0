package hnapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"HackerNews/internal/domain"
	"HackerNews/internal/ports"
)

// DefaultBaseURL is the public Hacker News Firebase API.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// Client implements ports.StorySource against the Hacker News Firebase API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

var _ ports.StorySource = (*Client)(nil)

// Options tunes the client; zero values fall back to defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing requests; 0 disables throttling.
	RequestsPerSecond float64
	// Burst is the limiter bucket size; defaults to 1 when throttling.
	Burst int
}

// NewClient creates a reusable API client.
func NewClient(opts Options, client *http.Client) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		http:    client,
		limiter: limiter,
	}
}

// TopStoryIDs returns the ranked identifiers of the current top stories.
func (c *Client) TopStoryIDs(ctx context.Context) ([]domain.StoryID, error) {
	var ids []domain.StoryID
	if err := c.get(ctx, "/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("top stories: %w", err)
	}
	return ids, nil
}

// item mirrors the subset of the API item schema we use.
type item struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

// Story fetches a single story record.
func (c *Client) Story(ctx context.Context, id domain.StoryID) (domain.Story, error) {
	var it *item
	if err := c.get(ctx, "/item/"+id.String()+".json", &it); err != nil {
		return domain.Story{}, fmt.Errorf("item %s: %w", id, err)
	}
	if it == nil {
		return domain.Story{}, fmt.Errorf("item %s: not found", id)
	}
	if it.Deleted || it.Dead {
		return domain.Story{}, fmt.Errorf("item %s: no longer available", id)
	}

	story := domain.Story{
		ID:       domain.StoryID(it.ID),
		Title:    strings.TrimSpace(it.Title),
		URL:      strings.TrimSpace(it.URL),
		Score:    it.Score,
		Author:   it.By,
		Comments: it.Descendants,
	}
	if it.Time > 0 {
		story.PublishedAt = time.Unix(it.Time, 0).UTC()
	}
	return story, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Name identifies the strategy inside the source registry.
func (c *Client) Name() string {
	return "api"
}
