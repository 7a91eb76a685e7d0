package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"HackerNews/internal/domain"
	"HackerNews/internal/ports"
)

// DefaultFeedURL is the hnrss.org front page feed.
const DefaultFeedURL = "https://hnrss.org/frontpage"

var (
	itemIDExpr   = regexp.MustCompile(`[?&]id=(\d+)`)
	pointsExpr   = regexp.MustCompile(`Points:\s*(\d+)`)
	commentsExpr = regexp.MustCompile(`#\s*Comments:\s*(\d+)`)
)

// Source reads stories from an hnrss-style feed. TopStoryIDs parses the feed
// and keeps the entries; Story answers from that snapshot.
type Source struct {
	feedURL string
	parser  *gofeed.Parser

	mu       sync.RWMutex
	snapshot map[domain.StoryID]domain.Story
}

var _ ports.StorySource = (*Source)(nil)

// NewSource builds a feed source; feedURL defaults to DefaultFeedURL.
func NewSource(client *http.Client, feedURL string) *Source {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "HackerNews/1.0"

	return &Source{
		feedURL:  feedURL,
		parser:   parser,
		snapshot: map[domain.StoryID]domain.Story{},
	}
}

// Name identifies the strategy inside the source registry.
func (s *Source) Name() string {
	return "rss"
}

// TopStoryIDs fetches the feed and returns its stories in feed order.
func (s *Source) TopStoryIDs(ctx context.Context) ([]domain.StoryID, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.feedURL, err)
	}

	ids := make([]domain.StoryID, 0, len(feed.Items))
	snapshot := make(map[domain.StoryID]domain.Story, len(feed.Items))
	for _, item := range feed.Items {
		story, ok := toStory(item)
		if !ok {
			continue
		}
		if _, dup := snapshot[story.ID]; dup {
			continue
		}
		snapshot[story.ID] = story
		ids = append(ids, story.ID)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	return ids, nil
}

// Story returns the story parsed by the last TopStoryIDs call.
func (s *Source) Story(ctx context.Context, id domain.StoryID) (domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return domain.Story{}, err
	}

	s.mu.RLock()
	story, ok := s.snapshot[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Story{}, fmt.Errorf("item %s: not in feed", id)
	}
	return story, nil
}

func toStory(item *gofeed.Item) (domain.Story, bool) {
	if item == nil {
		return domain.Story{}, false
	}

	id, ok := parseItemID(item.GUID)
	if !ok {
		if id, ok = parseItemID(item.Link); !ok {
			return domain.Story{}, false
		}
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return domain.Story{}, false
	}

	story := domain.Story{
		ID:       id,
		Title:    title,
		URL:      articleLink(item.Link),
		Score:    firstInt(pointsExpr, item.Description),
		Comments: firstInt(commentsExpr, item.Description),
		Author:   author(item),
	}
	if item.PublishedParsed != nil {
		story.PublishedAt = item.PublishedParsed.UTC()
	}

	return story, true
}

func parseItemID(raw string) (domain.StoryID, bool) {
	m := itemIDExpr.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return domain.StoryID(id), true
}

// articleLink drops links that point back at the discussion page.
func articleLink(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ""
	}
	if u.Host == "news.ycombinator.com" {
		return ""
	}
	return u.String()
}

func firstInt(expr *regexp.Regexp, text string) int {
	m := expr.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func author(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	return ""
}
