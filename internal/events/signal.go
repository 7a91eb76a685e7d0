package events

import "sync"

// Signal fans a value out to zero or more subscribers.
//
// Emit never blocks on subscribers: each handler runs on its own goroutine.
// Emitting with nobody subscribed drops the value.
type Signal[T any] struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[uint64]func(T)
	inflight sync.WaitGroup
}

// NewSignal returns a signal without subscribers.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{handlers: map[uint64]func(T){}}
}

// Subscribe registers handler and returns a function removing it again.
func (s *Signal[T]) Subscribe(handler func(T)) (unsubscribe func()) {
	if handler == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.handlers == nil {
		s.handlers = map[uint64]func(T){}
	}
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.handlers, id)
			s.mu.Unlock()
		})
	}
}

// Emit delivers value to every current subscriber asynchronously.
func (s *Signal[T]) Emit(value T) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.inflight.Add(len(s.handlers))
	for _, handler := range s.handlers {
		go func() {
			defer s.inflight.Done()
			handler(value)
		}()
	}
}

// Wait blocks until handlers started by earlier Emit calls have returned. It
// must not be called concurrently with Emit.
func (s *Signal[T]) Wait() {
	s.inflight.Wait()
}

// Subscribers returns the number of registered handlers.
func (s *Signal[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers)
}
