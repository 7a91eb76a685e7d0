package domain

import (
	"strconv"
	"time"
)

// StoryID identifies a story at the listing service.
type StoryID int64

// String renders the identifier the way the listing service prints it.
func (id StoryID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Story is a single fetched listing entry.
//
// Title is the deduplication key within a refresh cycle and is never empty.
// URL may be empty for text posts (Ask HN and friends). TitleSentiment is nil
// when enrichment failed or was skipped.
type Story struct {
	ID             StoryID
	Title          string
	URL            string
	Score          int
	Author         string
	Comments       int
	PublishedAt    time.Time
	TitleSentiment *float64
}

// WithSentiment returns a copy of s carrying the given title sentiment.
func (s Story) WithSentiment(value float64) Story {
	v := value
	s.TitleSentiment = &v
	return s
}

// Sentiment reports the title sentiment and whether it is present.
func (s Story) Sentiment() (float64, bool) {
	if s.TitleSentiment == nil {
		return 0, false
	}
	return *s.TitleSentiment, true
}

// HasLink reports whether the story points at an external article.
func (s Story) HasLink() bool {
	return s.URL != ""
}
