package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"HackerNews/internal/config"
	"HackerNews/internal/infrastructure/sentimentcache"
	"HackerNews/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newHNServer(t *testing.T) *httptest.Server {
	t.Helper()
	items := map[string]string{
		"1": `{"id":1,"type":"story","title":"Go 1.30 released","score":120,"url":"https://go.dev","by":"gopher","time":1700000000}`,
		"2": `{"id":2,"type":"story","title":"Ask HN: favourite editor?","score":40,"by":"dev"}`,
		"3": `{"id":3,"type":"story","title":"Go 1.30 released","score":80,"by":"dup"}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[1,2,3]`)
	})
	mux.HandleFunc("/item/{file}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("file")
		id = id[:len(id)-len(".json")]
		body, ok := items[id]
		if !ok {
			fmt.Fprint(w, "null")
			return
		}
		fmt.Fprint(w, body)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestRunOnceAgainstAPI(t *testing.T) {
	t.Parallel()
	ts := newHNServer(t)

	cfg := config.Default()
	cfg.Source.APIBaseURL = ts.URL
	cfg.Sentiment.Provider = config.SentimentNone
	cfg.Refresh.StoryCount = 3

	application, err := New(cfg, discardLogger())
	require.NoError(t, err)
	defer application.Close()

	report, err := application.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, usecase.StatusCompleted, report.Status)
	require.Equal(t, 3, report.Received)
	require.Equal(t, 2, report.Inserted)
	require.Equal(t, 1, report.Duplicates)

	stories := application.Feed().Snapshot()
	require.Len(t, stories, 2)
	require.GreaterOrEqual(t, stories[0].Score, stories[1].Score)
	for _, s := range stories {
		_, ok := s.Sentiment()
		require.False(t, ok)
	}
}

func TestRunOnceReportsSourceFailure(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	cfg := config.Default()
	cfg.Source.APIBaseURL = ts.URL
	cfg.Sentiment.Provider = config.SentimentNone

	application, err := New(cfg, discardLogger())
	require.NoError(t, err)

	failures := make(chan string, 1)
	unsubscribe := application.Refresher().Failures().Subscribe(func(msg string) { failures <- msg })
	defer unsubscribe()

	report, err := application.RunOnce(context.Background())
	require.Error(t, err)
	require.Equal(t, usecase.StatusFailed, report.Status)
	require.Contains(t, <-failures, "502")
	require.Zero(t, application.Feed().Len())
}

func TestBuildSourceSelectsStrategy(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{config.SourceAPI, config.SourceWeb, "RSS"} {
		cfg := config.Default().Source
		cfg.Kind = kind
		src, err := buildSource(cfg)
		require.NoError(t, err, kind)
		require.NotNil(t, src)
	}

	cfg := config.Default().Source
	cfg.Kind = "carrier-pigeon"
	_, err := buildSource(cfg)
	require.ErrorContains(t, err, "select story source")
}

func TestBuildAnalyzer(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	analyzer, err := buildAnalyzer(cfg, discardLogger())
	require.NoError(t, err)
	require.Nil(t, analyzer, "text analytics without a key stays disabled")

	cfg.Sentiment.APIKey = "key"
	analyzer, err = buildAnalyzer(cfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &sentimentcache.Analyzer{}, analyzer)

	cfg.Sentiment.Provider = config.SentimentChatGPT
	cfg.ChatGPT.APIKey = "sk"
	cfg.Sentiment.CacheSize = 0
	analyzer, err = buildAnalyzer(cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, analyzer)
	require.NotEqual(t, "*sentimentcache.Analyzer", fmt.Sprintf("%T", analyzer))

	cfg.Sentiment.Provider = config.SentimentNone
	analyzer, err = buildAnalyzer(cfg, discardLogger())
	require.NoError(t, err)
	require.Nil(t, analyzer)
}

func TestFailureIsSentToTelegram(t *testing.T) {
	t.Parallel()
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer source.Close()

	sent := make(chan string, 1)
	bot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bottoken/sendMessage" && r.ParseForm() == nil {
			sent <- r.PostForm.Get("text")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer bot.Close()

	cfg := config.Default()
	cfg.Source.APIBaseURL = source.URL
	cfg.Sentiment.Provider = config.SentimentNone
	cfg.Notifications.Telegram = config.TelegramConfig{BotToken: "token", ChatID: "42", APIURL: bot.URL}

	application, err := New(cfg, discardLogger())
	require.NoError(t, err)

	_, err = application.RunOnce(context.Background())
	require.Error(t, err)
	application.Close()

	select {
	case text := <-sent:
		require.Contains(t, text, "Hacker News refresh failed")
		require.Contains(t, text, "503")
	default:
		t.Fatal("Close returned before the notification was sent")
	}
}
