package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"HackerNews/internal/config"
	"HackerNews/internal/infrastructure/hnapi"
	"HackerNews/internal/infrastructure/llm"
	"HackerNews/internal/infrastructure/ml"
	"HackerNews/internal/infrastructure/parser"
	"HackerNews/internal/infrastructure/rss"
	"HackerNews/internal/infrastructure/scheduler"
	"HackerNews/internal/infrastructure/sentimentcache"
	"HackerNews/internal/infrastructure/telegram"
	"HackerNews/internal/livefeed"
	"HackerNews/internal/logging"
	"HackerNews/internal/ports"
	"HackerNews/internal/source"
	"HackerNews/internal/transport/httpapi"
	"HackerNews/internal/usecase"
)

const (
	notifyTimeout = 10 * time.Second
	stopTimeout   = 15 * time.Second
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	refresher *usecase.Refresher

	unsubscribes []func()
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	storySource, err := buildSource(cfg.Source)
	if err != nil {
		return nil, err
	}

	analyzer, err := buildAnalyzer(cfg, baseLogger.With("component", "sentiment"))
	if err != nil {
		return nil, err
	}

	refresher := usecase.NewRefresher(usecase.RefresherDeps{
		Source:               storySource,
		Analyzer:             analyzer,
		Feed:                 livefeed.New(),
		StoryCount:           cfg.Refresh.StoryCount,
		MaxConcurrentFetches: cfg.Refresh.MaxConcurrentFetches,
		Logger:               baseLogger.With("component", "refresh"),
	})

	a := &Application{cfg: cfg, logger: baseLogger, refresher: refresher}

	if tg := cfg.Notifications.Telegram; tg.Enabled() {
		notifier := telegram.NewNotifier(tg.BotToken, tg.ChatID).WithAPIURL(tg.APIURL)
		a.notifyFailures(notifier, baseLogger.With("component", "notifier.telegram"))
	}

	return a, nil
}

// Refresher exposes the refresh use case.
func (a *Application) Refresher() *usecase.Refresher {
	return a.refresher
}

// Feed returns the live story feed.
func (a *Application) Feed() *livefeed.Feed {
	return a.refresher.Feed()
}

// RunOnce performs a single refresh and blocks until it ends.
func (a *Application) RunOnce(ctx context.Context) (usecase.Report, error) {
	return a.refresher.Refresh(ctx)
}

// Serve runs the HTTP adapter and the periodic refresh until ctx is cancelled
// or one of them fails.
func (a *Application) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	server := httpapi.New(httpapi.Deps{
		Refresher:   a.refresher,
		Feed:        a.refresher.Feed(),
		Logger:      a.logger.With("component", "http"),
		BaseContext: gctx,
	})
	g.Go(func() error {
		return server.Run(gctx, a.cfg.HTTP.Addr)
	})

	sched := usecase.NewScheduler(
		scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval),
		a.refresher,
		a.logger.With("component", "scheduler"),
	)
	g.Go(func() error {
		if err := sched.Start(gctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		<-gctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := sched.Stop(stopCtx); err != nil {
			return fmt.Errorf("stop scheduler: %w", err)
		}
		return nil
	})

	a.logger.Info("serving",
		"addr", a.cfg.HTTP.Addr,
		"source", a.cfg.Source.Kind,
		"interval", a.cfg.Scheduler.Interval,
	)
	return g.Wait()
}

// Close detaches notifiers and waits for in-flight notifications.
// Call it once the refresher is idle.
func (a *Application) Close() {
	a.refresher.Failures().Wait()
	for _, unsubscribe := range a.unsubscribes {
		unsubscribe()
	}
	a.unsubscribes = nil
}

func (a *Application) notifyFailures(notifier ports.FailureNotifier, logger *slog.Logger) {
	unsubscribe := a.refresher.Failures().Subscribe(func(message string) {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := notifier.NotifyFailure(ctx, message); err != nil {
			logger.Warn("failure notification not sent", "error", err)
		}
	})
	a.unsubscribes = append(a.unsubscribes, unsubscribe)
}

func buildSource(cfg config.SourceConfig) (ports.StorySource, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	registry := source.NewRegistry()
	registry.Register(hnapi.NewClient(hnapi.Options{
		BaseURL:           cfg.APIBaseURL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	}, client))
	registry.Register(parser.NewWebSource(client, cfg.WebBaseURL))
	registry.Register(rss.NewSource(client, cfg.FeedURL))

	storySource, err := registry.Resolve(strings.ToLower(cfg.Kind))
	if err != nil {
		return nil, fmt.Errorf("select story source: %w", err)
	}
	return storySource, nil
}

// buildAnalyzer returns nil when sentiment is disabled or lacks credentials;
// the refresh then inserts stories without a score.
func buildAnalyzer(cfg config.Config, logger *slog.Logger) (ports.SentimentAnalyzer, error) {
	var analyzer ports.SentimentAnalyzer

	switch strings.ToLower(cfg.Sentiment.Provider) {
	case config.SentimentTextAnalytics:
		if cfg.Sentiment.APIKey == "" {
			logger.Warn("sentiment disabled, api key missing", "provider", cfg.Sentiment.Provider)
			return nil, nil
		}
		analyzer = ml.NewClient(cfg.Sentiment.Endpoint, cfg.Sentiment.APIKey, cfg.Sentiment.Timeout)
	case config.SentimentChatGPT:
		if cfg.ChatGPT.APIKey == "" {
			logger.Warn("sentiment disabled, api key missing", "provider", cfg.Sentiment.Provider)
			return nil, nil
		}
		analyzer = llm.NewChatGPTClient(cfg.ChatGPT)
	default:
		logger.Info("sentiment disabled")
		return nil, nil
	}

	if cfg.Sentiment.CacheSize <= 0 {
		return analyzer, nil
	}
	cached, err := sentimentcache.New(analyzer, cfg.Sentiment.CacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
