package usecase

import (
	"context"

	"HackerNews/internal/domain"
	"HackerNews/internal/metrics"
)

// Enrichment is the outcome of a best-effort sentiment lookup. Story is always
// usable: it carries the sentiment when Enriched is true and is the original
// story otherwise. Err explains a failed lookup; it is nil when enrichment was
// skipped because no analyzer is configured.
type Enrichment struct {
	Story    domain.Story
	Enriched bool
	Err      error
}

func (r *Refresher) enrich(ctx context.Context, story domain.Story) Enrichment {
	if r.analyzer == nil {
		metrics.EnrichmentTotal.WithLabelValues("skipped").Inc()
		return Enrichment{Story: story}
	}

	value, err := r.analyzer.Sentiment(ctx, story.Title)
	if err != nil {
		metrics.EnrichmentTotal.WithLabelValues("failed").Inc()
		return Enrichment{Story: story, Err: err}
	}

	metrics.EnrichmentTotal.WithLabelValues("ok").Inc()
	return Enrichment{Story: story.WithSentiment(value), Enriched: true}
}
