package livefeed

import "HackerNews/internal/domain"

// InsertionIndex returns where a story with score belongs in items, which must
// already be sorted by non-increasing score: right before the first element
// with a strictly smaller score, or at the end.
func InsertionIndex(items []domain.Story, score int) int {
	for i, existing := range items {
		if existing.Score < score {
			return i
		}
	}
	return len(items)
}
