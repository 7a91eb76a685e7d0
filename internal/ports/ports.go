package ports

import (
	"context"
	"time"

	"HackerNews/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks HackerNews/internal/ports StorySource,SentimentAnalyzer,FailureNotifier

// StorySource pulls the ranked identifier list and individual stories from a listing service.
type StorySource interface {
	TopStoryIDs(ctx context.Context) ([]domain.StoryID, error)
	Story(ctx context.Context, id domain.StoryID) (domain.Story, error)
}

// SentimentAnalyzer scores a piece of text. It may fail at any time.
type SentimentAnalyzer interface {
	Sentiment(ctx context.Context, text string) (float64, error)
}

// FailureNotifier relays refresh failures to an outbound channel (Telegram, etc.).
type FailureNotifier interface {
	NotifyFailure(ctx context.Context, message string) error
}

// Scheduler controls when refreshes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
