package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"HackerNews/internal/domain"
	"HackerNews/internal/ports"
)

const (
	// DefaultBaseURL is the public Hacker News site.
	DefaultBaseURL = "https://news.ycombinator.com"
)

var (
	scoreExpr    = regexp.MustCompile(`(\d+)\s+points?`)
	commentsExpr = regexp.MustCompile(`(\d+)\s*comments?`)
)

// WebSource scrapes the Hacker News front page and item pages.
type WebSource struct {
	client  *http.Client
	baseURL string
}

var _ ports.StorySource = (*WebSource)(nil)

// NewWebSource wires an HTTP client; baseURL defaults to news.ycombinator.com.
func NewWebSource(client *http.Client, baseURL string) *WebSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &WebSource{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name identifies the strategy inside the source registry.
func (w *WebSource) Name() string {
	return "web"
}

// TopStoryIDs returns the front page story identifiers in rank order.
func (w *WebSource) TopStoryIDs(ctx context.Context) ([]domain.StoryID, error) {
	doc, err := w.fetchDocument(ctx, w.baseURL+"/news")
	if err != nil {
		return nil, fmt.Errorf("front page: %w", err)
	}

	var ids []domain.StoryID
	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		raw, ok := row.Attr("id")
		if !ok {
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return
		}
		ids = append(ids, domain.StoryID(id))
	})

	return ids, nil
}

// Story loads the item page and extracts the story row.
func (w *WebSource) Story(ctx context.Context, id domain.StoryID) (domain.Story, error) {
	doc, err := w.fetchDocument(ctx, w.baseURL+"/item?id="+id.String())
	if err != nil {
		return domain.Story{}, fmt.Errorf("item %s: %w", id, err)
	}

	row := doc.Find(fmt.Sprintf("tr.athing[id='%s']", id)).First()
	if row.Length() == 0 {
		return domain.Story{}, fmt.Errorf("item %s: story row not found", id)
	}

	return parseStory(id, row, w.baseURL), nil
}

func (w *WebSource) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "HackerNews/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hacker news returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// parseStory reads the title row and the subtext row right below it.
func parseStory(id domain.StoryID, row *goquery.Selection, baseURL string) domain.Story {
	link := row.Find(".titleline > a").First()
	title := strings.TrimSpace(link.Text())
	href, _ := link.Attr("href")

	sub := row.Next().Find(".subtext")

	story := domain.Story{
		ID:     id,
		Title:  title,
		URL:    resolveLink(href, baseURL),
		Author: strings.TrimSpace(sub.Find(".hnuser").First().Text()),
	}

	if m := scoreExpr.FindStringSubmatch(sub.Find(".score").First().Text()); m != nil {
		story.Score, _ = strconv.Atoi(m[1])
	}

	sub.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.ReplaceAll(a.Text(), "\u00a0", " ")
		if m := commentsExpr.FindStringSubmatch(text); m != nil {
			story.Comments, _ = strconv.Atoi(m[1])
		}
	})

	if stamp, ok := sub.Find(".age").First().Attr("title"); ok {
		story.PublishedAt = parseAge(stamp)
	}

	return story
}

// resolveLink keeps absolute article links; links back into the site (Ask HN,
// Show HN text posts) mean the story has no article.
func resolveLink(href, baseURL string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil || !parsed.IsAbs() {
		return ""
	}
	if base, err := url.Parse(baseURL); err == nil && parsed.Host == base.Host {
		return ""
	}
	return parsed.String()
}

// parseAge reads the "2007-04-04T19:16:40 1175714200" title of the age span.
func parseAge(stamp string) time.Time {
	fields := strings.Fields(stamp)
	if len(fields) == 0 {
		return time.Time{}
	}
	if len(fields) > 1 {
		if sec, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			return time.Unix(sec, 0).UTC()
		}
	}
	if parsed, err := time.Parse("2006-01-02T15:04:05", fields[0]); err == nil {
		return parsed.UTC()
	}
	return time.Time{}
}
