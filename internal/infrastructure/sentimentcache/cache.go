// Package sentimentcache memoises title sentiment between refreshes so a story
// that stays on the front page is not scored again.
package sentimentcache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"HackerNews/internal/ports"
)

// Analyzer wraps another analyzer with an in-memory LRU. Failures are not cached.
type Analyzer struct {
	next  ports.SentimentAnalyzer
	cache *lru.Cache[string, float64]
}

var _ ports.SentimentAnalyzer = (*Analyzer)(nil)

// New wraps next with a cache holding up to size titles.
func New(next ports.SentimentAnalyzer, size int) (*Analyzer, error) {
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, fmt.Errorf("new sentiment cache: %w", err)
	}
	return &Analyzer{next: next, cache: cache}, nil
}

// Sentiment returns the cached score for text or asks the wrapped analyzer.
func (a *Analyzer) Sentiment(ctx context.Context, text string) (float64, error) {
	if value, ok := a.cache.Get(text); ok {
		return value, nil
	}

	value, err := a.next.Sentiment(ctx, text)
	if err != nil {
		return 0, err
	}

	a.cache.Add(text, value)
	return value, nil
}

// Len returns the number of cached titles.
func (a *Analyzer) Len() int {
	return a.cache.Len()
}
