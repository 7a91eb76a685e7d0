// Package livefeed holds the observable, score-sorted, title-deduplicated story list
// that a refresh fills incrementally.
package livefeed

import (
	"sync"

	"HackerNews/internal/domain"
)

// EventKind tells observers what changed.
type EventKind int

const (
	// EventCleared is sent when the feed was emptied.
	EventCleared EventKind = iota
	// EventInserted is sent after a story landed at Index.
	EventInserted
)

// String returns the wire name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventCleared:
		return "cleared"
	case EventInserted:
		return "inserted"
	default:
		return "unknown"
	}
}

// Event describes one mutation of the feed.
type Event struct {
	Kind  EventKind
	Story domain.Story
	Index int
}

// Observer receives feed events in mutation order.
type Observer func(Event)

// Feed is a sorted story list. Scores never increase from front to back and
// stories with equal scores keep insertion order. Titles are unique until the
// next Clear.
//
// A single writer is expected. Readers may call Snapshot, Len and At from any
// goroutine while the writer is inserting.
type Feed struct {
	mu     sync.RWMutex
	items  []domain.Story
	titles map[string]struct{}

	obsMu     sync.RWMutex
	nextObsID uint64
	observers map[uint64]Observer
}

// New returns an empty feed.
func New() *Feed {
	return &Feed{
		titles:    map[string]struct{}{},
		observers: map[uint64]Observer{},
	}
}

// Subscribe registers an observer. Observers run synchronously on the writer's
// goroutine after the feed lock is released, so they must return quickly.
func (f *Feed) Subscribe(observer Observer) (unsubscribe func()) {
	if observer == nil {
		return func() {}
	}

	f.obsMu.Lock()
	if f.observers == nil {
		f.observers = map[uint64]Observer{}
	}
	id := f.nextObsID
	f.nextObsID++
	f.observers[id] = observer
	f.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.obsMu.Lock()
			delete(f.observers, id)
			f.obsMu.Unlock()
		})
	}
}

// Clear empties the feed and forgets every title seen so far.
func (f *Feed) Clear() {
	f.mu.Lock()
	f.items = nil
	f.titles = map[string]struct{}{}
	f.mu.Unlock()

	f.notify(Event{Kind: EventCleared, Index: -1})
}

// Insert adds story at its sorted position unless a story with the same title
// is already present. It returns the index the story landed at.
func (f *Feed) Insert(story domain.Story) (index int, inserted bool) {
	f.mu.Lock()
	if f.titles == nil {
		f.titles = map[string]struct{}{}
	}
	if _, dup := f.titles[story.Title]; dup {
		f.mu.Unlock()
		return -1, false
	}

	index = InsertionIndex(f.items, story.Score)
	f.items = append(f.items, domain.Story{})
	copy(f.items[index+1:], f.items[index:])
	f.items[index] = story
	f.titles[story.Title] = struct{}{}
	f.mu.Unlock()

	f.notify(Event{Kind: EventInserted, Story: story, Index: index})
	return index, true
}

// Contains reports whether a story with title is present.
func (f *Feed) Contains(title string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.titles[title]
	return ok
}

// Len returns the number of stories.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// At returns the story at index i.
func (f *Feed) At(i int) (domain.Story, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if i < 0 || i >= len(f.items) {
		return domain.Story{}, false
	}
	return f.items[i], true
}

// Snapshot copies the current contents.
func (f *Feed) Snapshot() []domain.Story {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.Story, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) notify(ev Event) {
	f.obsMu.RLock()
	observers := make([]Observer, 0, len(f.observers))
	for _, obs := range f.observers {
		observers = append(observers, obs)
	}
	f.obsMu.RUnlock()

	for _, obs := range observers {
		obs(ev)
	}
}
