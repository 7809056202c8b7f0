package mem

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int64
	expiresAt time.Time
}

// WindowCounter is an in-process fixed-window counter used for rate limiting
// when Redis is not configured.
type WindowCounter struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewWindowCounter() *WindowCounter {
	return &WindowCounter{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Incr counts one hit for key and returns the count in the current window and
// the time left until it resets.
func (s *WindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.data[key]
	if !ok || !now.Before(e.expiresAt) {
		e = entry{expiresAt: now.Add(window)}
		s.sweep(now)
	}
	e.count++
	s.data[key] = e

	return e.count, e.expiresAt.Sub(now), nil
}

// sweep drops expired windows; called with the lock held.
func (s *WindowCounter) sweep(now time.Time) {
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
