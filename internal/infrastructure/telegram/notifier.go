package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"HackerNews/internal/ports"
)

const (
	defaultAPIURL   = "https://api.telegram.org"
	// maxMessageRunes is the Bot API limit for a message text.
	maxMessageRunes = 4096
	messagePrefix   = "Hacker News refresh failed: "
)

// Notifier sends refresh failures to a Telegram chat via bot API.
type Notifier struct {
	apiURL   string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.FailureNotifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		apiURL:   defaultAPIURL,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// WithAPIURL points the notifier at a different Bot API host.
func (n *Notifier) WithAPIURL(apiURL string) *Notifier {
	if apiURL != "" {
		n.apiURL = apiURL
	}
	return n
}

// NotifyFailure posts the failure message to Telegram.
func (n *Notifier) NotifyFailure(ctx context.Context, message string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(n.apiURL, "/"), n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", truncate(messagePrefix+message, maxMessageRunes))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr); err == nil && apiErr.Description != "" {
			return fmt.Errorf("telegram error %s: %s", resp.Status, apiErr.Description)
		}
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
