package livefeed

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"HackerNews/internal/domain"
)

func story(title string, score int) domain.Story {
	return domain.Story{Title: title, Score: score}
}

func titles(stories []domain.Story) []string {
	out := make([]string, len(stories))
	for i, s := range stories {
		out[i] = s.Title
	}
	return out
}

func requireSorted(t *testing.T, stories []domain.Story) {
	t.Helper()
	for i := 1; i < len(stories); i++ {
		require.GreaterOrEqual(t, stories[i-1].Score, stories[i].Score,
			"feed not sorted at %d: %v", i, titles(stories))
	}
}

func TestInsertionIndex(t *testing.T) {
	t.Parallel()

	items := []domain.Story{story("a", 50), story("b", 50), story("c", 30)}

	cases := []struct {
		name  string
		score int
		want  int
	}{
		{name: "higher than all", score: 60, want: 0},
		{name: "equal to head goes after equals", score: 50, want: 2},
		{name: "between", score: 40, want: 2},
		{name: "equal to tail", score: 30, want: 3},
		{name: "lowest", score: 1, want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, InsertionIndex(items, tc.score))
		})
	}

	require.Equal(t, 0, InsertionIndex(nil, 10))
}

func TestFeedStableForEqualScores(t *testing.T) {
	t.Parallel()

	f := New()
	f.Insert(story("A", 10))
	f.Insert(story("B", 10))

	require.Equal(t, []string{"A", "B"}, titles(f.Snapshot()))
}

func TestFeedRejectsDuplicateTitles(t *testing.T) {
	t.Parallel()

	f := New()
	idx, ok := f.Insert(story("Ask HN: X", 40))
	require.True(t, ok)
	require.Equal(t, 0, idx)

	idx, ok = f.Insert(story("Ask HN: X", 90))
	require.False(t, ok)
	require.Equal(t, -1, idx)

	snap := f.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, 40, snap[0].Score)
}

func TestFeedClearForgetsTitles(t *testing.T) {
	t.Parallel()

	f := New()
	f.Insert(story("a", 1))
	require.True(t, f.Contains("a"))

	f.Clear()
	require.Zero(t, f.Len())
	require.False(t, f.Contains("a"))

	_, ok := f.Insert(story("a", 1))
	require.True(t, ok)
}

func TestFeedInvariantsUnderRandomInsertions(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		f := New()
		order := map[string]int{}
		for step := 0; step < 40; step++ {
			title := fmt.Sprintf("t%d", rng.Intn(25))
			s := story(title, rng.Intn(8))
			if _, ok := f.Insert(s); ok {
				order[title] = step
			}

			snap := f.Snapshot()
			requireSorted(t, snap)

			seen := map[string]bool{}
			for i, item := range snap {
				require.False(t, seen[item.Title], "duplicate title %q", item.Title)
				seen[item.Title] = true
				if i > 0 && snap[i-1].Score == item.Score {
					require.Less(t, order[snap[i-1].Title], order[item.Title], "equal scores out of insertion order")
				}
			}
		}
	}
}

func TestFeedObserverReceivesEventsInOrder(t *testing.T) {
	t.Parallel()

	f := New()
	var events []Event
	unsubscribe := f.Subscribe(func(ev Event) { events = append(events, ev) })

	f.Clear()
	f.Insert(story("low", 1))
	f.Insert(story("high", 9))
	f.Insert(story("high", 9))

	require.Len(t, events, 3)
	require.Equal(t, EventCleared, events[0].Kind)
	require.Equal(t, EventInserted, events[1].Kind)
	require.Equal(t, 0, events[1].Index)
	require.Equal(t, "high", events[2].Story.Title)
	require.Equal(t, 0, events[2].Index)

	unsubscribe()
	f.Insert(story("mid", 5))
	require.Len(t, events, 3)
}

func TestFeedConcurrentReaders(t *testing.T) {
	t.Parallel()

	f := New()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := f.Snapshot()
				for i := 1; i < len(snap); i++ {
					if snap[i-1].Score < snap[i].Score {
						t.Errorf("reader saw unsorted feed")
						return
					}
				}
				_ = f.Len()
				_, _ = f.At(0)
			}
		}()
	}

	for i := range 200 {
		f.Insert(story(fmt.Sprintf("s%d", i), i%17))
	}
	close(stop)
	wg.Wait()

	require.Equal(t, 200, f.Len())
	requireSorted(t, f.Snapshot())
}

func TestFeedAtBounds(t *testing.T) {
	t.Parallel()

	f := New()
	_, ok := f.At(0)
	require.False(t, ok)

	f.Insert(story("x", 3))
	got, ok := f.At(0)
	require.True(t, ok)
	require.Equal(t, "x", got.Title)
	_, ok = f.At(-1)
	require.False(t, ok)
}

func TestEventKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "cleared", EventCleared.String())
	require.Equal(t, "inserted", EventInserted.String())
	require.Equal(t, "unknown", EventKind(99).String())
}
