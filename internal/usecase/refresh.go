package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"HackerNews/internal/domain"
	"HackerNews/internal/events"
	"HackerNews/internal/livefeed"
	"HackerNews/internal/metrics"
	"HackerNews/internal/ports"
)

var (
	// ErrInvalidStoryCount means the configured story count is not positive.
	ErrInvalidStoryCount = errors.New("story count must be positive")
	// ErrRefreshInProgress is returned when a refresh is requested while another runs.
	ErrRefreshInProgress = errors.New("refresh already in progress")
	// ErrNoSource means the refresher was built without a story source.
	ErrNoSource = errors.New("story source is not configured")
	// ErrUntitledStory is returned for a fetched story without a title.
	ErrUntitledStory = errors.New("story has no title")
)

// Status is the terminal state of a refresh cycle.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Report summarises one refresh cycle.
type Report struct {
	ID                 uuid.UUID
	Status             Status
	Candidates         int
	Received           int
	Inserted           int
	Duplicates         int
	Enriched           int
	EnrichmentFailures int
	StartedAt          time.Time
	Duration           time.Duration
}

// RefresherDeps wires the driven adapters into the refresh pipeline.
type RefresherDeps struct {
	Source   ports.StorySource
	Analyzer ports.SentimentAnalyzer
	Feed     *livefeed.Feed
	// StoryCount is the number of fetch results consumed per refresh.
	StoryCount int
	// MaxConcurrentFetches bounds in-flight story fetches; 0 launches all at once.
	MaxConcurrentFetches int
	Logger               *slog.Logger
}

// Refresher fills the live feed with the top stories, enriched with title sentiment.
type Refresher struct {
	source     ports.StorySource
	analyzer   ports.SentimentAnalyzer
	feed       *livefeed.Feed
	storyCount int
	maxFetches int
	logger     *slog.Logger
	failures   *events.Signal[string]

	refreshing atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	last   *Report
}

// NewRefresher constructs the pipeline. A nil feed gets a fresh one.
func NewRefresher(deps RefresherDeps) *Refresher {
	feed := deps.Feed
	if feed == nil {
		feed = livefeed.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Refresher{
		source:     deps.Source,
		analyzer:   deps.Analyzer,
		feed:       feed,
		storyCount: deps.StoryCount,
		maxFetches: deps.MaxConcurrentFetches,
		logger:     logger,
		failures:   events.NewSignal[string](),
	}
}

// Feed returns the live feed the refresher writes to.
func (r *Refresher) Feed() *livefeed.Feed {
	return r.feed
}

// Failures is raised once per failed refresh with a human readable message.
func (r *Refresher) Failures() *events.Signal[string] {
	return r.failures
}

// IsRefreshing reports whether a refresh is running.
func (r *Refresher) IsRefreshing() bool {
	return r.refreshing.Load()
}

// LastReport returns the report of the most recently finished refresh.
func (r *Refresher) LastReport() (Report, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Report{}, false
	}
	return *r.last, true
}

// Refresh runs one refresh cycle and blocks until it ends.
//
// A cancelled ctx ends the cycle silently: the returned error is nil, the
// report status is StatusCancelled and the feed keeps what was inserted. Source
// failures raise Failures and are returned.
func (r *Refresher) Refresh(ctx context.Context) (Report, error) {
	ctx, cancel, err := r.begin(ctx)
	if err != nil {
		return Report{}, err
	}
	return r.execute(ctx, cancel)
}

// RequestRefresh starts a refresh in the background. It returns false when a
// refresh is already running or the refresher is misconfigured.
func (r *Refresher) RequestRefresh(ctx context.Context) bool {
	ctx, cancel, err := r.begin(ctx)
	if err != nil {
		r.logger.Debug("refresh request ignored", "reason", err.Error())
		return false
	}
	go func() {
		_, _ = r.execute(ctx, cancel)
	}()
	return true
}

// Cancel stops the running refresh, if any.
func (r *Refresher) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel == nil {
		return false
	}
	r.cancel()
	return true
}

// begin claims the in-progress flag and registers the cancel func before
// returning, so Cancel works as soon as IsRefreshing reports true.
func (r *Refresher) begin(parent context.Context) (context.Context, context.CancelFunc, error) {
	if r.storyCount <= 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidStoryCount, r.storyCount)
	}
	if r.source == nil {
		return nil, nil, ErrNoSource
	}
	if !r.refreshing.CompareAndSwap(false, true) {
		return nil, nil, ErrRefreshInProgress
	}
	metrics.Refreshing.Set(1)

	ctx, cancel := context.WithCancel(parent)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	return ctx, cancel, nil
}

func (r *Refresher) execute(ctx context.Context, cancel context.CancelFunc) (Report, error) {
	report := Report{ID: uuid.New(), StartedAt: time.Now()}
	logger := r.logger.With("refresh_id", report.ID.String())

	defer func() {
		cancel()
		r.mu.Lock()
		r.cancel = nil
		finished := report
		r.last = &finished
		r.mu.Unlock()
		r.refreshing.Store(false)
		metrics.Refreshing.Set(0)
	}()

	logger.Info("refresh started", "story_count", r.storyCount)

	err := r.run(ctx, logger, &report)
	report.Duration = time.Since(report.StartedAt)

	switch {
	case err == nil:
		report.Status = StatusCompleted
	case ctx.Err() != nil:
		report.Status = StatusCancelled
		err = nil
	default:
		report.Status = StatusFailed
	}

	metrics.RefreshTotal.WithLabelValues(string(report.Status)).Inc()
	metrics.RefreshDuration.WithLabelValues(string(report.Status)).Observe(report.Duration.Seconds())

	if err != nil {
		logger.Error("refresh failed", "error", err, "inserted", report.Inserted)
		r.failures.Emit(err.Error())
		return report, err
	}

	logger.Info("refresh finished",
		"status", report.Status,
		"inserted", report.Inserted,
		"duplicates", report.Duplicates,
		"enriched", report.Enriched,
		"enrichment_failures", report.EnrichmentFailures,
		"duration", report.Duration,
	)
	return report, nil
}

func (r *Refresher) run(ctx context.Context, logger *slog.Logger, report *Report) error {
	r.feed.Clear()
	metrics.FeedSize.Set(0)

	ids, err := r.source.TopStoryIDs(ctx)
	if err != nil {
		return fmt.Errorf("fetch top story ids: %w", err)
	}
	report.Candidates = len(ids)
	logger.Debug("top story ids fetched", "count", len(ids))

	fetchCtx, abandon := context.WithCancel(ctx)
	defer abandon()

	results := r.fetchAll(fetchCtx, ids)
	limit := min(r.storyCount, len(ids))

	for report.Received < limit {
		var res fetchResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-results:
		}
		report.Received++

		if res.err != nil {
			metrics.StoriesProcessed.WithLabelValues("fetch_error").Inc()
			return fmt.Errorf("fetch story %s: %w", res.id, res.err)
		}
		if res.story.Title == "" {
			metrics.StoriesProcessed.WithLabelValues("fetch_error").Inc()
			return fmt.Errorf("fetch story %s: %w", res.id, ErrUntitledStory)
		}

		enrichment := r.enrich(ctx, res.story)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch {
		case enrichment.Enriched:
			report.Enriched++
		case enrichment.Err != nil:
			report.EnrichmentFailures++
			logger.Debug("sentiment unavailable", "story_id", res.id, "error", enrichment.Err)
		}

		if index, ok := r.feed.Insert(enrichment.Story); ok {
			report.Inserted++
			metrics.StoriesProcessed.WithLabelValues("inserted").Inc()
			metrics.FeedSize.Inc()
			logger.Debug("story inserted", "story_id", res.id, "score", res.story.Score, "index", index)
		} else {
			report.Duplicates++
			metrics.StoriesProcessed.WithLabelValues("duplicate").Inc()
		}

		runtime.Gosched()
	}

	return nil
}

type fetchResult struct {
	id    domain.StoryID
	story domain.Story
	err   error
}

// fetchAll launches one fetch per id and delivers results in completion order.
// The channel is buffered for every id so abandoned fetches never block.
func (r *Refresher) fetchAll(ctx context.Context, ids []domain.StoryID) <-chan fetchResult {
	results := make(chan fetchResult, len(ids))

	var sem *semaphore.Weighted
	if r.maxFetches > 0 {
		sem = semaphore.NewWeighted(int64(r.maxFetches))
	}

	for _, id := range ids {
		go func() {
			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					results <- fetchResult{id: id, err: err}
					return
				}
				defer sem.Release(1)
			}
			story, err := r.source.Story(ctx, id)
			results <- fetchResult{id: id, story: story, err: err}
		}()
	}

	return results
}
