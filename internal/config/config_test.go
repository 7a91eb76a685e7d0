package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 50, cfg.Refresh.StoryCount)
	require.Equal(t, SourceAPI, cfg.Source.Kind)
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
source:
  kind: web
  requestsPerSecond: 2.5
refresh:
  storyCount: 10
  maxConcurrentFetches: 4
scheduler:
  interval: 90s
sentiment:
  provider: chatgpt
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format, "untouched keys keep defaults")
	require.Equal(t, SourceWeb, cfg.Source.Kind)
	require.InDelta(t, 2.5, cfg.Source.RequestsPerSecond, 1e-9)
	require.Equal(t, 10, cfg.Refresh.StoryCount)
	require.Equal(t, 4, cfg.Refresh.MaxConcurrentFetches)
	require.Equal(t, 90*time.Second, cfg.Scheduler.Interval)
	require.Equal(t, SentimentChatGPT, cfg.Sentiment.Provider)
	require.Equal(t, "https://hacker-news.firebaseio.com/v0", cfg.Source.APIBaseURL)
}

func TestLoadUsesEnvPathAndOverrides(t *testing.T) {
	path := writeConfig(t, "refresh:\n  storyCount: 7\n")
	t.Setenv(configPathEnv, path)
	t.Setenv(sentimentKeyEnv, "sentiment-key")
	t.Setenv(telegramTokenEnv, "bot")
	t.Setenv(telegramChatIDEnv, "chat")
	t.Setenv(httpAddrEnv, ":9999")
	t.Setenv(logLevelEnv, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Refresh.StoryCount)
	require.Equal(t, "sentiment-key", cfg.Sentiment.APIKey)
	require.True(t, cfg.Notifications.Telegram.Enabled())
	require.Equal(t, ":9999", cfg.HTTP.Addr)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(configPathEnv, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "refresh: [not, a, map"))
	require.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "refresh:\n  storyCount: 0\n"))
	require.ErrorContains(t, err, "refresh.storyCount must be > 0")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Source.Kind = "gopher"
	cfg.Sentiment.Provider = "magic"
	cfg.Refresh.StoryCount = -1
	cfg.Scheduler.Interval = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, `source.kind "gopher"`)
	require.ErrorContains(t, err, `sentiment.provider "magic"`)
	require.ErrorContains(t, err, "storyCount")
	require.ErrorContains(t, err, "scheduler.interval")

	require.NoError(t, Default().Validate())
}
