package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "HACKERNEWS_CONFIG"
	logLevelEnv        = "HACKERNEWS_LOG_LEVEL"
	httpAddrEnv        = "HACKERNEWS_HTTP_ADDR"
	sentimentKeyEnv    = "SENTIMENT_API_KEY"
	chatGPTAPIKeyEnv   = "CHATGPT_API_KEY"
	chatGPTModelEnv    = "CHATGPT_MODEL"
	telegramTokenEnv   = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv  = "TELEGRAM_CHAT_ID"
	defaultStoryCount  = 50
	defaultCacheSize   = 512
	defaultHTTPAddress = "127.0.0.1:8080"
)

// Story source strategies.
const (
	SourceAPI = "api"
	SourceWeb = "web"
	SourceRSS = "rss"
)

// Sentiment providers.
const (
	SentimentTextAnalytics = "textanalytics"
	SentimentChatGPT       = "chatgpt"
	SentimentNone          = "none"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Source        SourceConfig       `yaml:"source"`
	Sentiment     SentimentConfig    `yaml:"sentiment"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
	Refresh       RefreshConfig      `yaml:"refresh"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	HTTP          HTTPConfig         `yaml:"http"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SourceConfig describes where stories come from.
type SourceConfig struct {
	Kind              string        `yaml:"kind"`
	APIBaseURL        string        `yaml:"apiBaseUrl"`
	WebBaseURL        string        `yaml:"webBaseUrl"`
	FeedURL           string        `yaml:"feedUrl"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
}

// SentimentConfig describes the title sentiment service.
type SentimentConfig struct {
	Provider  string        `yaml:"provider"`
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"apiKey"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cacheSize"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// RefreshConfig tunes the refresh pipeline.
type RefreshConfig struct {
	StoryCount           int `yaml:"storyCount"`
	MaxConcurrentFetches int `yaml:"maxConcurrentFetches"`
}

// SchedulerConfig defines how often the feed refreshes in serve mode; 0 disables.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	// APIURL overrides the Bot API host, mostly for tests.
	APIURL string `yaml:"apiUrl"`
}

// Enabled reports whether both token and chat are set.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads YAML configuration over the defaults and applies environment
// overrides. An empty path falls back to HACKERNEWS_CONFIG; without either only
// defaults and environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.HTTP.Addr = v
	}

	if v := os.Getenv(sentimentKeyEnv); v != "" {
		c.Sentiment.APIKey = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Refresh.StoryCount <= 0 {
		errs = append(errs, fmt.Errorf("refresh.storyCount must be > 0, got %d", c.Refresh.StoryCount))
	}
	if c.Refresh.MaxConcurrentFetches < 0 {
		errs = append(errs, errors.New("refresh.maxConcurrentFetches must be >= 0"))
	}

	switch strings.ToLower(c.Source.Kind) {
	case SourceAPI, SourceWeb, SourceRSS:
	default:
		errs = append(errs, fmt.Errorf("source.kind %q is unknown", c.Source.Kind))
	}
	if c.Source.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("source.requestsPerSecond must be >= 0"))
	}

	switch strings.ToLower(c.Sentiment.Provider) {
	case SentimentTextAnalytics, SentimentChatGPT, SentimentNone, "":
	default:
		errs = append(errs, fmt.Errorf("sentiment.provider %q is unknown", c.Sentiment.Provider))
	}
	if c.Sentiment.CacheSize < 0 {
		errs = append(errs, errors.New("sentiment.cacheSize must be >= 0"))
	}

	if c.Scheduler.Interval < 0 {
		errs = append(errs, errors.New("scheduler.interval must be >= 0"))
	}

	return errors.Join(errs...)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Source: SourceConfig{
			Kind:              SourceAPI,
			APIBaseURL:        "https://hacker-news.firebaseio.com/v0",
			WebBaseURL:        "https://news.ycombinator.com",
			FeedURL:           "https://hnrss.org/frontpage",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 0,
		},
		Sentiment: SentimentConfig{
			Provider:  SentimentTextAnalytics,
			Endpoint:  "https://westus.api.cognitive.microsoft.com",
			Timeout:   10 * time.Second,
			CacheSize: defaultCacheSize,
		},
		ChatGPT: ChatGPTConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Refresh:   RefreshConfig{StoryCount: defaultStoryCount},
		Scheduler: SchedulerConfig{Interval: 5 * time.Minute},
		HTTP:      HTTPConfig{Addr: defaultHTTPAddress},
	}
}
