package httpapi

import (
	"time"

	"HackerNews/internal/domain"
	"HackerNews/internal/usecase"
)

type storyResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url,omitempty"`
	Score       int        `json:"score"`
	Author      string     `json:"author,omitempty"`
	Comments    int        `json:"comments"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Sentiment   *float64   `json:"sentiment,omitempty"`
}

func toStoryResponse(s domain.Story) storyResponse {
	resp := storyResponse{
		ID:        int64(s.ID),
		Title:     s.Title,
		URL:       s.URL,
		Score:     s.Score,
		Author:    s.Author,
		Comments:  s.Comments,
		Sentiment: s.TitleSentiment,
	}
	if !s.PublishedAt.IsZero() {
		published := s.PublishedAt.UTC()
		resp.PublishedAt = &published
	}
	return resp
}

func toStoryResponses(stories []domain.Story) []storyResponse {
	out := make([]storyResponse, 0, len(stories))
	for _, s := range stories {
		out = append(out, toStoryResponse(s))
	}
	return out
}

type storiesResponse struct {
	Refreshing bool            `json:"refreshing"`
	Count      int             `json:"count"`
	Stories    []storyResponse `json:"stories"`
}

type reportResponse struct {
	ID                 string    `json:"id"`
	Status             string    `json:"status"`
	Candidates         int       `json:"candidates"`
	Received           int       `json:"received"`
	Inserted           int       `json:"inserted"`
	Duplicates         int       `json:"duplicates"`
	Enriched           int       `json:"enriched"`
	EnrichmentFailures int       `json:"enrichment_failures"`
	StartedAt          time.Time `json:"started_at"`
	DurationMS         int64     `json:"duration_ms"`
}

func toReportResponse(r usecase.Report) *reportResponse {
	return &reportResponse{
		ID:                 r.ID.String(),
		Status:             string(r.Status),
		Candidates:         r.Candidates,
		Received:           r.Received,
		Inserted:           r.Inserted,
		Duplicates:         r.Duplicates,
		Enriched:           r.Enriched,
		EnrichmentFailures: r.EnrichmentFailures,
		StartedAt:          r.StartedAt.UTC(),
		DurationMS:         r.Duration.Milliseconds(),
	}
}

type refreshStatusResponse struct {
	Refreshing bool            `json:"refreshing"`
	Last       *reportResponse `json:"last,omitempty"`
}

type streamEvent struct {
	Index int           `json:"index"`
	Story storyResponse `json:"story"`
}

type errorResponse struct {
	Error string `json:"error"`
}
