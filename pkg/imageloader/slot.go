package imageloader

import (
	"context"
	"sync"
)

// Slot tracks the single in-flight fetch of one view. Starting a new fetch
// cancels the previous one.
type Slot struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// Begin cancels any in-flight fetch and returns a context for the next one
// along with its generation number.
func (s *Slot) Begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.gen++
	return ctx, s.gen
}

// Current reports whether gen is still the latest fetch.
func (s *Slot) Current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

// Cancel aborts the in-flight fetch, if any.
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}
